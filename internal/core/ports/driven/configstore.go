package driven

// ConfigStore reads and writes user settings. Keys use dot notation that
// mirrors the file's tables, e.g. "catalog.path" or "display.indicators".
// Typed getters return the zero value when a key is missing or holds
// another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetBool(key string) bool
	// GetFloat converts integer values.
	GetFloat(key string) float64

	// Set and Unset persist the change before returning.
	Set(key string, value any) error
	Unset(key string) error

	Save() error
	Load() error

	// Path returns where settings are stored.
	Path() string
}
