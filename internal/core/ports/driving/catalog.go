package driving

import (
	"context"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// CatalogService manages the service catalog.
type CatalogService interface {
	// Refresh fetches the catalog from its source, validates and persists it.
	Refresh(ctx context.Context) ([]domain.Service, error)

	// Import validates and persists a catalog supplied by the caller.
	Import(ctx context.Context, catalog *domain.Catalog) error

	// List returns all persisted services.
	List(ctx context.Context) ([]domain.Service, error)

	// Get retrieves a service by ID.
	Get(ctx context.Context, id string) (*domain.Service, error)

	// FeatureNames returns the feature display name map.
	FeatureNames(ctx context.Context) (domain.FeatureNames, error)

	// Suggest returns up to limit service IDs closest to id.
	Suggest(ctx context.Context, id string, limit int) ([]string, error)

	// SourceName describes the configured catalog source, or "" if none.
	SourceName() string
}
