package driving

import "github.com/custodia-labs/tierdeck/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCatalogFile points the catalog at a local file.
	SetCatalogFile(path string, watch bool) error

	// SetCatalogAPI points the catalog at the marketplace API.
	SetCatalogAPI(baseURL, tenantID, apiToken string) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
