package driving

import "github.com/feezz8/toll-aggregation/internal/core/domain"

// SettingsService reads and edits the local configuration.
type SettingsService interface {
	// Client resolves ClientSettings from defaults, the config store and
	// overrides, in increasing precedence. Invalid stored values fall
	// back to defaults; invalid overrides are errors.
	Client(overrides map[string]string) (domain.ClientSettings, error)

	// Get returns a stored value.
	Get(key string) (string, bool)

	// Set validates and stores a value.
	Set(key, value string) error

	// Unset removes a stored value.
	Unset(key string) error

	// All returns every stored value.
	All() map[string]string

	// Path returns the config file location.
	Path() string
}
