package driving

import (
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// SettingsService manages application configuration.
type SettingsService interface {
	// Get retrieves current settings, layering environment overrides on
	// top of the config file.
	Get() (*domain.AppSettings, error)

	// GetValue returns the effective string value for a known config key.
	GetValue(key string) (string, error)

	// SetValue writes a known config key to the config file.
	SetValue(key, value string) error

	// Keys returns all known config keys, sorted.
	Keys() []string

	// Validate checks that the settings required for enrichment are present.
	Validate() error

	// Path returns the config file path.
	Path() string
}
