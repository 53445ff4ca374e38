package profile

import (
	"github.com/Daskott/sosphone/prefs"
)

// Load reads every profile field from store
func Load(store prefs.Store) (Profile, error) {
	p := Profile{}

	for _, f := range Fields {
		value, err := store.Get(f.Key())
		if err != nil {
			return Profile{}, err
		}
		p.Set(f, value)
	}

	return p, nil
}

// Save writes every profile field to store in one batch, absent fields are removed
func Save(store prefs.Store, p Profile) error {
	return store.SetMany(p.Values())
}

// Clear removes every profile field from store
func Clear(store prefs.Store) error {
	return store.Clear(Keys()...)
}
