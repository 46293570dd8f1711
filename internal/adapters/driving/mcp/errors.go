// Package mcp provides an MCP (Model Context Protocol) server adapter for tierdeck.
// It lets AI assistants browse service tiers and record tier choices.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")

// ErrMissingCarousel is returned when the carousel controller is not provided.
var ErrMissingCarousel = errors.New("mcp: carousel controller is required")
