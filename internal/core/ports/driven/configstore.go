package driven

// ConfigStore holds flat, dot-separated settings keys such as
// "backend.base_url" or "chat.ordering".
// The settings service is its only reader; typed access lives there.
type ConfigStore interface {
	// Get returns the raw value for key and whether one was found.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string value.
	GetString(key string) string

	// GetInt returns 0 for a missing or non-numeric value.
	// Numeric strings, as supplied by the environment, are parsed.
	GetInt(key string) int

	// Set stores value under key. Persistent stores write through.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path names where values are kept, for display in settings.
	Path() string
}
