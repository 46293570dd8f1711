package driven

import (
	"context"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// CatalogSource fetches a tenant's service catalog from outside the app.
// Implementations treat the result as already-validated data; the catalog
// service validates before persisting.
type CatalogSource interface {
	// Fetch loads the full catalog.
	Fetch(ctx context.Context) (*domain.Catalog, error)

	// Name describes the source for logs and status output.
	Name() string
}

// CatalogWatcher notifies when the catalog behind a source changes.
type CatalogWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange after each change.
	Watch(ctx context.Context, onChange func()) error
}

// CatalogStore persists the service catalog.
type CatalogStore interface {
	// ReplaceCatalog atomically replaces all services and feature names.
	ReplaceCatalog(ctx context.Context, catalog *domain.Catalog) error

	// ListServices returns all services in display order.
	ListServices(ctx context.Context) ([]domain.Service, error)

	// GetService retrieves a service by ID.
	GetService(ctx context.Context, id string) (*domain.Service, error)

	// FeatureNames returns the feature key to display name map.
	FeatureNames(ctx context.Context) (domain.FeatureNames, error)
}
