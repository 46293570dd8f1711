package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu       sync.RWMutex
	services []domain.Service
	names    domain.FeatureNames
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		names: make(domain.FeatureNames),
	}
}

// ReplaceCatalog swaps the stored catalog for a copy of catalog.
func (s *CatalogStore) ReplaceCatalog(_ context.Context, catalog *domain.Catalog) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}

	services := make([]domain.Service, len(catalog.Services))
	for i, svc := range catalog.Services {
		services[i] = cloneService(svc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = services
	s.names = maps.Clone(catalog.FeatureNames)
	if s.names == nil {
		s.names = make(domain.FeatureNames)
	}
	return nil
}

// ListServices returns all services in display order.
func (s *CatalogStore) ListServices(_ context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Service, len(s.services))
	for i, svc := range s.services {
		result[i] = cloneService(svc)
	}
	return result, nil
}

// GetService retrieves a service by ID.
func (s *CatalogStore) GetService(_ context.Context, id string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := domain.FindService(s.services, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := cloneService(*svc)
	return &cp, nil
}

// FeatureNames returns a copy of the feature name map.
func (s *CatalogStore) FeatureNames(_ context.Context) (domain.FeatureNames, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.names), nil
}

func cloneService(svc domain.Service) domain.Service {
	tiers := make([]domain.Tier, len(svc.Tiers))
	for i, t := range svc.Tiers {
		t.Features = append([]string(nil), t.Features...)
		tiers[i] = t
	}
	svc.Tiers = tiers
	return svc
}
