package tui

import "errors"

// ErrMissingCarousel is returned when the carousel controller is not provided.
var ErrMissingCarousel = errors.New("tui: carousel controller is required")

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("tui: catalog service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
