package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// The carousel types never return these; they degrade to no-ops instead.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an unknown catalog file format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Catalog Errors.

	// ErrCatalogUnavailable indicates the catalog source could not be reached
	// or answered with an unsuccessful envelope.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrRateLimited indicates the marketplace API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
