package domain

const unknownDescription = "Unknown"

// CatalogSource identifies where the service catalog is loaded from.
type CatalogSource string

// Available catalog sources.
const (
	// CatalogSourceFile reads a local JSON, YAML or TOML catalog file.
	CatalogSourceFile CatalogSource = "file"

	// CatalogSourceAPI fetches services from the marketplace REST API.
	CatalogSourceAPI CatalogSource = "api"
)

// IsValid returns true if the catalog source is recognised.
func (c CatalogSource) IsValid() bool {
	switch c {
	case CatalogSourceFile, CatalogSourceAPI:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c CatalogSource) String() string {
	return string(c)
}

// Description returns a human-readable description of the source.
func (c CatalogSource) Description() string {
	switch c {
	case CatalogSourceFile:
		return "Local catalog file"
	case CatalogSourceAPI:
		return "Marketplace API"
	default:
		return unknownDescription
	}
}

// AllCatalogSources returns all available catalog sources.
func AllCatalogSources() []CatalogSource {
	return []CatalogSource{
		CatalogSourceFile,
		CatalogSourceAPI,
	}
}

// CatalogSettings holds catalog loading configuration.
type CatalogSettings struct {
	// Source selects the catalog backend.
	Source CatalogSource

	// Path is the catalog file (for the file source).
	Path string

	// Watch reloads the catalog when the file changes.
	Watch bool

	// BaseURL is the marketplace API root (for the api source).
	BaseURL string

	// APIToken is an optional bearer token for the API.
	APIToken string

	// TenantID, VehicleType and Category scope the API request.
	TenantID    string
	VehicleType string
	Category    string

	// RequestsPerSecond throttles API calls.
	RequestsPerSecond float64
}

// IsConfigured returns true if the configured source has what it needs.
func (c CatalogSettings) IsConfigured() bool {
	switch c.Source {
	case CatalogSourceFile:
		return c.Path != ""
	case CatalogSourceAPI:
		return c.BaseURL != "" && c.TenantID != ""
	default:
		return false
	}
}

// DisplaySettings holds carousel presentation options.
type DisplaySettings struct {
	// ShowIndicators renders the tier indicator dots.
	ShowIndicators bool

	// ShowPlaceholders renders dummy boundary slots as blank cards.
	ShowPlaceholders bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Catalog holds catalog source settings.
	Catalog CatalogSettings

	// Display holds carousel display settings.
	Display DisplaySettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The catalog path is left empty; users point it at a file or API.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			Source:            CatalogSourceFile,
			Watch:             true,
			VehicleType:       "car",
			Category:          "all",
			RequestsPerSecond: 2,
		},
		Display: DisplaySettings{
			ShowIndicators:   true,
			ShowPlaceholders: true,
		},
	}
}
