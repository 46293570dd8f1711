package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Services: []domain.Service{
			{ID: "wash", Name: "Wash", Tiers: []domain.Tier{{ID: "basic", Price: 20, Features: []string{"foam"}}}},
			{ID: "detail", Name: "Detail"},
		},
		FeatureNames: domain.FeatureNames{"foam": "Foam cannon"},
	}
}

func TestCatalogStore_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore()

	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))

	services, err := store.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "wash", services[0].ID, "display order is kept")
	assert.Equal(t, "detail", services[1].ID)

	require.NoError(t, store.ReplaceCatalog(ctx, &domain.Catalog{}))
	services, err = store.ListServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, services)

	names, err := store.FeatureNames(ctx)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestCatalogStore_ReplaceNil(t *testing.T) {
	store := NewCatalogStore()
	err := store.ReplaceCatalog(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogStore_GetService(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore()
	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))

	svc, err := store.GetService(ctx, "wash")
	require.NoError(t, err)
	assert.Equal(t, "Wash", svc.Name)

	_, err = store.GetService(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore()
	catalog := testCatalog()
	require.NoError(t, store.ReplaceCatalog(ctx, catalog))

	catalog.Services[0].Tiers[0].Features[0] = "mutated"
	svc, err := store.GetService(ctx, "wash")
	require.NoError(t, err)
	svc.Tiers[0].Name = "changed"

	again, err := store.GetService(ctx, "wash")
	require.NoError(t, err)
	assert.Equal(t, []string{"foam"}, again.Tiers[0].Features)
	assert.Empty(t, again.Tiers[0].Name)

	names, err := store.FeatureNames(ctx)
	require.NoError(t, err)
	names["foam"] = "x"
	names, _ = store.FeatureNames(ctx)
	assert.Equal(t, "Foam cannon", names["foam"])
}
