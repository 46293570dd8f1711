package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	services []domain.Service
	names    domain.FeatureNames
	err      error
}

func (m *mockCatalogService) Refresh(_ context.Context) ([]domain.Service, error) {
	return m.services, m.err
}

func (m *mockCatalogService) Import(_ context.Context, catalog *domain.Catalog) error {
	if m.err != nil {
		return m.err
	}
	m.services = catalog.Services
	m.names = catalog.FeatureNames
	return nil
}

func (m *mockCatalogService) List(_ context.Context) ([]domain.Service, error) {
	return m.services, m.err
}

func (m *mockCatalogService) Get(_ context.Context, id string) (*domain.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	if svc, ok := domain.FindService(m.services, id); ok {
		return svc, nil
	}
	return nil, fmt.Errorf("service %q: %w", id, domain.ErrNotFound)
}

func (m *mockCatalogService) FeatureNames(_ context.Context) (domain.FeatureNames, error) {
	return m.names, m.err
}

func (m *mockCatalogService) Suggest(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, m.err
}

func (m *mockCatalogService) SourceName() string {
	return "mock"
}

// mockBookingService is a mock implementation of driving.BookingService.
type mockBookingService struct {
	recorded []domain.Selection
	err      error
}

func (m *mockBookingService) Record(_ context.Context, sel domain.Selection) (*domain.BookingChoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.recorded = append(m.recorded, sel)
	return choiceFor(sel), nil
}

func (m *mockBookingService) Latest(_ context.Context, _ string) (*domain.BookingChoice, error) {
	return nil, domain.ErrNotFound
}

func (m *mockBookingService) List(_ context.Context) ([]domain.BookingChoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	choices := make([]domain.BookingChoice, len(m.recorded))
	for i, sel := range m.recorded {
		choices[i] = *choiceFor(sel)
	}
	return choices, nil
}

func (m *mockBookingService) Clear(_ context.Context) error {
	m.recorded = nil
	return m.err
}

func choiceFor(sel domain.Selection) *domain.BookingChoice {
	return &domain.BookingChoice{
		ID:         "booking-" + sel.ServiceID + "-" + sel.TierID,
		ServiceID:  sel.ServiceID,
		TierID:     sel.TierID,
		TierIndex:  sel.TierIndex,
		SelectedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

var (
	_ driving.CatalogService = (*mockCatalogService)(nil)
	_ driving.BookingService = (*mockBookingService)(nil)
)
