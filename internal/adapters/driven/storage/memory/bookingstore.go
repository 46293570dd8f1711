package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
)

// Ensure BookingStore implements the interface.
var _ driven.BookingStore = (*BookingStore)(nil)

// BookingStore is an in-memory implementation of driven.BookingStore.
type BookingStore struct {
	mu      sync.RWMutex
	choices []domain.BookingChoice
}

// NewBookingStore creates a new in-memory booking store.
func NewBookingStore() *BookingStore {
	return &BookingStore{}
}

// Save stores a booking choice.
func (s *BookingStore) Save(_ context.Context, choice domain.BookingChoice) error {
	if choice.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.choices {
		if c.ID == choice.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.choices = append(s.choices, choice)
	return nil
}

// Latest returns the most recent choice for a service.
func (s *BookingStore) Latest(ctx context.Context, serviceID string) (*domain.BookingChoice, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ServiceID == serviceID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all choices, newest first.
func (s *BookingStore) List(_ context.Context) ([]domain.BookingChoice, error) {
	s.mu.RLock()
	result := make([]domain.BookingChoice, len(s.choices))
	copy(result, s.choices)
	s.mu.RUnlock()

	// Reverse first so equal timestamps list the latest write first.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SelectedAt.After(result[j].SelectedAt)
	})
	return result, nil
}

// Clear removes all choices.
func (s *BookingStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choices = nil
	return nil
}
