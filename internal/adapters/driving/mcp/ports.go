package mcp

import (
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog serves the service list and feature names.
	Catalog driving.CatalogService

	// Carousel holds navigation and selection state per service.
	Carousel driving.CarouselController

	// Booking records committed tier choices. Optional.
	Booking driving.BookingService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Carousel == nil {
		return ErrMissingCarousel
	}
	return nil
}
