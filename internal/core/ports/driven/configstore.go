package driven

// ConfigStore provides durable key-value persistence for the session
// credential and client settings. Values are plain strings; a key that is
// not present is "absent".
type ConfigStore interface {
	// Get retrieves a value by key.
	// It fails soft: a missing, unreadable or malformed backing record
	// reports the key as absent instead of returning an error.
	Get(key string) (string, bool)

	// Set stores a value. The existing record is read, the single key is
	// overlaid and the complete record is written back, so unrelated keys
	// survive.
	Set(key, value string) error

	// Unset removes a key, leaving it absent. Other keys are preserved.
	Unset(key string) error

	// All returns a copy of every stored key.
	All() map[string]string

	// Path returns the backing location, for display.
	Path() string
}
