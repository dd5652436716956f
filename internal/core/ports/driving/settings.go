package driving

import "github.com/vimed-graphrag/vimed-cli/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get retrieves the current settings, falling back to defaults.
	Get() (*domain.ClientSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.ClientSettings) error

	// Set updates a single setting by key, e.g. "backend.base_url".
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string

	// ConfigPath returns the configuration file location.
	ConfigPath() string
}
