package services

import (
	"fmt"
	"net/url"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCatalogSource    = "catalog.source"
	keyCatalogPath      = "catalog.path"
	keyCatalogWatch     = "catalog.watch"
	keyAPIBaseURL       = "api.base_url"
	keyAPIToken         = "api.token"
	keyAPITenant        = "api.tenant"
	keyAPIVehicle       = "api.vehicle"
	keyAPICategory      = "api.category"
	keyAPIRate          = "api.requests_per_second"
	keyShowIndicators   = "display.indicators"
	keyShowPlaceholders = "display.placeholders"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Source:            s.getCatalogSource(defaults.Catalog.Source),
			Path:              s.configStore.GetString(keyCatalogPath),
			Watch:             s.getBool(keyCatalogWatch, defaults.Catalog.Watch),
			BaseURL:           s.configStore.GetString(keyAPIBaseURL),
			APIToken:          s.configStore.GetString(keyAPIToken),
			TenantID:          s.configStore.GetString(keyAPITenant),
			VehicleType:       s.getString(keyAPIVehicle, defaults.Catalog.VehicleType),
			Category:          s.getString(keyAPICategory, defaults.Catalog.Category),
			RequestsPerSecond: s.getFloat(keyAPIRate, defaults.Catalog.RequestsPerSecond),
		},
		Display: domain.DisplaySettings{
			ShowIndicators:   s.getBool(keyShowIndicators, defaults.Display.ShowIndicators),
			ShowPlaceholders: s.getBool(keyShowPlaceholders, defaults.Display.ShowPlaceholders),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	c := settings.Catalog
	values := []struct {
		key   string
		value any
	}{
		{keyCatalogSource, c.Source.String()},
		{keyCatalogPath, c.Path},
		{keyCatalogWatch, c.Watch},
		{keyAPIBaseURL, c.BaseURL},
		{keyAPITenant, c.TenantID},
		{keyAPIVehicle, c.VehicleType},
		{keyAPICategory, c.Category},
		{keyAPIRate, c.RequestsPerSecond},
		{keyShowIndicators, settings.Display.ShowIndicators},
		{keyShowPlaceholders, settings.Display.ShowPlaceholders},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty token clears the stored one.
	if c.APIToken != "" {
		if err := s.configStore.Set(keyAPIToken, c.APIToken); err != nil {
			return fmt.Errorf("save %s: %w", keyAPIToken, err)
		}
	} else if err := s.configStore.Unset(keyAPIToken); err != nil {
		return fmt.Errorf("clear %s: %w", keyAPIToken, err)
	}

	return nil
}

// SetCatalogFile points the catalog at a local file.
func (s *SettingsService) SetCatalogFile(path string, watch bool) error {
	if path == "" {
		return fmt.Errorf("%w: catalog path is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Catalog.Source = domain.CatalogSourceFile
	settings.Catalog.Path = path
	settings.Catalog.Watch = watch

	return s.Save(settings)
}

// SetCatalogAPI points the catalog at the marketplace API.
// An empty apiToken keeps the current token.
func (s *SettingsService) SetCatalogAPI(baseURL, tenantID, apiToken string) error {
	if err := validateBaseURL(baseURL); err != nil {
		return err
	}
	if tenantID == "" {
		return fmt.Errorf("%w: tenant id is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Catalog.Source = domain.CatalogSourceAPI
	settings.Catalog.BaseURL = baseURL
	settings.Catalog.TenantID = tenantID
	if apiToken != "" {
		settings.Catalog.APIToken = apiToken
	}

	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	c := settings.Catalog
	switch c.Source {
	case domain.CatalogSourceFile:
		if c.Path == "" {
			return fmt.Errorf("%w: no catalog file configured", domain.ErrInvalidInput)
		}
	case domain.CatalogSourceAPI:
		if err := validateBaseURL(c.BaseURL); err != nil {
			return err
		}
		if c.TenantID == "" {
			return fmt.Errorf("%w: no tenant configured", domain.ErrInvalidInput)
		}
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests per second must be positive", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: invalid API base URL %q", domain.ErrInvalidInput, raw)
	}
	return nil
}

// Helper methods

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getCatalogSource(defaultVal domain.CatalogSource) domain.CatalogSource {
	src := domain.CatalogSource(s.configStore.GetString(keyCatalogSource))
	if src.IsValid() {
		return src
	}
	return defaultVal
}
