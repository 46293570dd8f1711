package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

func useTempConfig(t *testing.T) {
	t.Helper()
	original := configDir
	configDir = t.TempDir()
	t.Cleanup(func() { configDir = original })
}

func TestBootstrap_Unconfigured(t *testing.T) {
	useTempConfig(t)
	ctx := context.Background()

	svcs, closer, err := bootstrap(ctx, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	assert.Empty(t, svcs.Catalog.SourceName())
	assert.Nil(t, svcs.Watcher)

	list, err := svcs.Catalog.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBootstrap_FileSourceFromEnvironment(t *testing.T) {
	useTempConfig(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"services":[{"id":"wash","name":"Wash","tiers":[{"id":"basic","name":"Basic","price":10}]}]}`), 0o600))
	t.Setenv("TIERDECK_CATALOG_SOURCE", "file")
	t.Setenv("TIERDECK_CATALOG_PATH", path)

	dataDir := t.TempDir()
	svcs, closer, err := bootstrap(ctx, dataDir)
	require.NoError(t, err)

	assert.NotNil(t, svcs.Watcher, "file sources are watched by default")
	list, err := svcs.Catalog.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	svcs.Carousel.SetServices(list)
	sel, ok := svcs.Carousel.SelectTier("wash", 0)
	require.True(t, ok)
	_, err = svcs.Booking.Record(ctx, sel)
	require.NoError(t, err)
	require.NoError(t, closer())

	// A second run reads the same database.
	svcs, closer, err = bootstrap(ctx, dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })
	stored, err := svcs.Catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	latest, err := svcs.Booking.Latest(ctx, "wash")
	require.NoError(t, err)
	assert.Equal(t, "basic", latest.TierID)
}

func TestCatalogSource(t *testing.T) {
	tests := []struct {
		name        string
		settings    domain.CatalogSettings
		wantSource  string
		wantWatcher bool
		wantErr     bool
	}{
		{
			name:     "unconfigured",
			settings: domain.CatalogSettings{Source: domain.CatalogSourceFile},
		},
		{
			name:        "watched file",
			settings:    domain.CatalogSettings{Source: domain.CatalogSourceFile, Path: "/srv/catalog.yaml", Watch: true},
			wantSource:  "/srv/catalog.yaml",
			wantWatcher: true,
		},
		{
			name:       "unwatched file",
			settings:   domain.CatalogSettings{Source: domain.CatalogSourceFile, Path: "/srv/catalog.toml"},
			wantSource: "/srv/catalog.toml",
		},
		{
			name:     "unknown extension",
			settings: domain.CatalogSettings{Source: domain.CatalogSourceFile, Path: "/srv/catalog.csv"},
			wantErr:  true,
		},
		{
			name: "api",
			settings: domain.CatalogSettings{
				Source: domain.CatalogSourceAPI, BaseURL: "https://market.example.com", TenantID: "acme",
			},
			wantSource: "market.example.com",
		},
		{
			name: "api with bad url",
			settings: domain.CatalogSettings{
				Source: domain.CatalogSourceAPI, BaseURL: "ftp://market.example.com", TenantID: "acme",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, watcher, err := catalogSource(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantSource == "" {
				assert.Nil(t, source)
			} else {
				require.NotNil(t, source)
				assert.Contains(t, source.Name(), tt.wantSource)
			}
			assert.Equal(t, tt.wantWatcher, watcher != nil)
		})
	}
}

func TestBootstrap_TracesSelections(t *testing.T) {
	useTempConfig(t)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	svcs, closer, err := bootstrap(context.Background(), t.TempDir())
	require.NoError(t, err)

	svcs.Carousel.SetServices([]domain.Service{{
		ID: "wash", Name: "Wash", Tiers: []domain.Tier{{ID: "basic"}, {ID: "deluxe"}},
	}})
	_, ok := svcs.Carousel.SelectTier("wash", 1)
	require.True(t, ok)
	assert.Contains(t, buf.String(), "tier selected")
	assert.Contains(t, buf.String(), `"tier": "deluxe"`)

	require.NoError(t, closer())
	buf.Reset()
	_, _ = svcs.Carousel.SelectTier("wash", 0)
	assert.NotContains(t, buf.String(), "tier selected", "closing stops tracing")
}
