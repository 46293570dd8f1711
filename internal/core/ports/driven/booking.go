package driven

import (
	"context"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// BookingStore persists recorded tier selections.
type BookingStore interface {
	// Save stores a booking choice.
	Save(ctx context.Context, choice domain.BookingChoice) error

	// Latest returns the most recent choice for a service.
	// Returns domain.ErrNotFound if none exists.
	Latest(ctx context.Context, serviceID string) (*domain.BookingChoice, error)

	// List returns all choices, newest first.
	List(ctx context.Context) ([]domain.BookingChoice, error)

	// Clear removes all choices.
	Clear(ctx context.Context) error
}
