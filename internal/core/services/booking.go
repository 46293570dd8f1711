package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// Ensure BookingService implements the interface.
var _ driving.BookingService = (*BookingService)(nil)

// BookingService records committed tier selections.
type BookingService struct {
	store driven.BookingStore
	now   func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(store driven.BookingStore) *BookingService {
	return &BookingService{
		store: store,
		now:   time.Now,
	}
}

// Record stores a selection as a new booking choice.
func (s *BookingService) Record(ctx context.Context, sel domain.Selection) (*domain.BookingChoice, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if sel.ServiceID == "" || sel.TierID == "" || sel.TierIndex < 0 {
		return nil, domain.ErrInvalidInput
	}

	choice := domain.BookingChoice{
		ID:         uuid.New().String(),
		ServiceID:  sel.ServiceID,
		TierID:     sel.TierID,
		TierIndex:  sel.TierIndex,
		SelectedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, choice); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}
	return &choice, nil
}

// Latest returns the newest choice for a service.
func (s *BookingService) Latest(ctx context.Context, serviceID string) (*domain.BookingChoice, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if serviceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Latest(ctx, serviceID)
}

// List returns all choices, newest first.
func (s *BookingService) List(ctx context.Context) ([]domain.BookingChoice, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Clear removes every stored choice.
func (s *BookingService) Clear(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear(ctx)
}

// RestoreSelections replays each service's latest stored choice into the
// carousel so a restarted host shows what the customer committed to.
// Choices whose tier no longer exists are skipped. It returns the number
// of selections restored.
func RestoreSelections(ctx context.Context, carousel driving.CarouselController, bookings driving.BookingService) (int, error) {
	if carousel == nil || bookings == nil {
		return 0, nil
	}

	restored := 0
	for _, svc := range carousel.Services() {
		choice, err := bookings.Latest(ctx, svc.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return restored, fmt.Errorf("latest booking for %s: %w", svc.ID, err)
		}
		for i, tier := range svc.Tiers {
			if tier.ID != choice.TierID {
				continue
			}
			if _, ok := carousel.SelectTier(svc.ID, i); ok {
				restored++
			}
			break
		}
	}
	return restored, nil
}
