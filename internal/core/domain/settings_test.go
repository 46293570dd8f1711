package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCatalogSource_IsValid tests all valid and invalid catalog sources
func TestCatalogSource_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		source   CatalogSource
		expected bool
	}{
		{"file is valid", CatalogSourceFile, true},
		{"api is valid", CatalogSourceAPI, true},
		{"empty string is invalid", CatalogSource(""), false},
		{"unknown source is invalid", CatalogSource("ftp"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.source.IsValid())
		})
	}
}

func TestCatalogSource_Description(t *testing.T) {
	assert.Equal(t, "Local catalog file", CatalogSourceFile.Description())
	assert.Equal(t, "Marketplace API", CatalogSourceAPI.Description())
	assert.Equal(t, "Unknown", CatalogSource("x").Description())
}

func TestAllCatalogSources(t *testing.T) {
	sources := AllCatalogSources()

	assert.Len(t, sources, 2)
	for _, s := range sources {
		assert.True(t, s.IsValid())
	}
}

func TestCatalogSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings CatalogSettings
		expected bool
	}{
		{"file with path", CatalogSettings{Source: CatalogSourceFile, Path: "catalog.yaml"}, true},
		{"file without path", CatalogSettings{Source: CatalogSourceFile}, false},
		{"api with url and tenant", CatalogSettings{Source: CatalogSourceAPI, BaseURL: "https://x", TenantID: "t"}, true},
		{"api without tenant", CatalogSettings{Source: CatalogSourceAPI, BaseURL: "https://x"}, false},
		{"invalid source", CatalogSettings{Source: "ftp", Path: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, CatalogSourceFile, settings.Catalog.Source)
	assert.True(t, settings.Catalog.Watch)
	assert.Equal(t, 2.0, settings.Catalog.RequestsPerSecond)
	assert.True(t, settings.Display.ShowIndicators)
	assert.True(t, settings.Display.ShowPlaceholders)
	assert.False(t, settings.Catalog.IsConfigured())
}
