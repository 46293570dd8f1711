// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewServices is the service picker.
	ViewServices
	// ViewCarousel is the tier carousel for one service.
	ViewCarousel
	// ViewBookings lists recorded tier choices.
	ViewBookings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewServices:
		return "services"
	case ViewCarousel:
		return "carousel"
	case ViewBookings:
		return "bookings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CatalogLoaded carries the services after the carousel has been synced
// with them.
type CatalogLoaded struct {
	Services     []domain.Service
	FeatureNames domain.FeatureNames
	Err          error
}

// CatalogChanged signals the persisted catalog was replaced, either by a
// reload or by the file watcher.
type CatalogChanged struct {
	Err error
}

// ReloadRequested asks the app to refresh the catalog from its source.
type ReloadRequested struct{}

// ServiceSelected signals a service was picked for the carousel.
type ServiceSelected struct {
	ServiceID string
}

// TierSelected carries a committed selection and its stored booking choice.
type TierSelected struct {
	Selection domain.Selection
	Choice    *domain.BookingChoice
	Err       error
}

// BookingsLoaded carries recorded tier choices.
type BookingsLoaded struct {
	Choices []domain.BookingChoice
	Err     error
}

// BookingsCleared signals every recorded choice was removed.
type BookingsCleared struct {
	Err error
}
