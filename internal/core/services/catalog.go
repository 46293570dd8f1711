package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// maxSuggestDistance bounds how different a suggestion may be from the input.
const maxSuggestDistance = 4

// CatalogService loads the catalog from a source and keeps it in a store.
type CatalogService struct {
	source driven.CatalogSource
	store  driven.CatalogStore
}

// NewCatalogService creates a new catalog service.
// source may be nil when only persisted data is needed.
func NewCatalogService(source driven.CatalogSource, store driven.CatalogStore) *CatalogService {
	return &CatalogService{
		source: source,
		store:  store,
	}
}

// SourceName describes the configured source.
func (s *CatalogService) SourceName() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Refresh fetches, validates and persists the catalog.
func (s *CatalogService) Refresh(ctx context.Context) ([]domain.Service, error) {
	if s.source == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Debug("Fetching catalog from %s", s.source.Name())
	catalog, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if err := s.Import(ctx, catalog); err != nil {
		return nil, err
	}

	logger.L().Info("catalog refreshed",
		zap.String("source", s.source.Name()),
		zap.Int("services", len(catalog.Services)),
	)
	return catalog.Services, nil
}

// Import validates a catalog and replaces the stored one with it.
func (s *CatalogService) Import(ctx context.Context, catalog *domain.Catalog) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if catalog == nil {
		return domain.ErrInvalidInput
	}
	if err := catalog.Validate(); err != nil {
		return err
	}
	if err := s.store.ReplaceCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	return nil
}

// List returns all persisted services.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListServices(ctx)
}

// Get retrieves a service by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetService(ctx, id)
}

// FeatureNames returns the stored feature display names.
func (s *CatalogService) FeatureNames(ctx context.Context) (domain.FeatureNames, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.FeatureNames(ctx)
}

// Suggest returns up to limit service IDs ordered by edit distance to id.
func (s *CatalogService) Suggest(ctx context.Context, id string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	services, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		id   string
		dist int
	}
	needle := strings.ToLower(id)
	var candidates []candidate
	for i := range services {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(services[i].ID))
		if d <= maxSuggestDistance || strings.Contains(strings.ToLower(services[i].ID), needle) {
			candidates = append(candidates, candidate{services[i].ID, d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out, nil
}
