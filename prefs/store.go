// Package prefs is the preference store: a named, durable mapping from string
// keys to optional string values. Setting a key to nil removes it, so an
// absent value is never stored as an empty string.
package prefs

type Store interface {
	// Get returns the value stored for key, or nil if the key is absent
	Get(key string) (*string, error)

	// Set stores value for key. A nil value removes the key.
	Set(key string, value *string) error

	// SetMany applies all entries at once, nil values remove their key
	SetMany(entries map[string]*string) error

	// Clear removes all the given keys
	Clear(keys ...string) error
}
