package driving

import (
	"context"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// BookingService records the tiers customers commit to.
type BookingService interface {
	// Record stores a selection emitted by the carousel.
	Record(ctx context.Context, sel domain.Selection) (*domain.BookingChoice, error)

	// Latest returns the most recent choice for a service.
	Latest(ctx context.Context, serviceID string) (*domain.BookingChoice, error)

	// List returns all choices, newest first.
	List(ctx context.Context) ([]domain.BookingChoice, error)

	// Clear removes all choices.
	Clear(ctx context.Context) error
}
