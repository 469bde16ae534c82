package driven

import "context"

// Config keys understood by ConfigSource and ConfigStore.
const (
	ConfigKeyProject    = "project"
	ConfigKeyLocation   = "location"
	ConfigKeyCollection = "collection"
	ConfigKeyFormat     = "format"
)

// ConfigSource supplies external defaults when flags and environment are silent.
type ConfigSource interface {
	// Lookup returns the value for key and whether one was found.
	Lookup(ctx context.Context, key string) (string, bool)
}

// ConfigStore provides access to persistent configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	ConfigSource

	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// Keys returns all stored keys in sorted order.
	Keys() []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Unset removes a configuration value and persists the change.
	Unset(key string) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
