// Package tui provides an interactive terminal user interface for tierdeck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Carousel holds per-service navigation and selection state.
	Carousel driving.CarouselController

	// Catalog loads and refreshes the service catalog.
	Catalog driving.CatalogService

	// Booking records committed tier choices. Optional.
	Booking driving.BookingService

	// Settings provides display preferences. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(carousel driving.CarouselController, catalog driving.CatalogService) *Ports {
	return &Ports{
		Carousel: carousel,
		Catalog:  catalog,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Carousel == nil {
		return ErrMissingCarousel
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
