// Package nav holds the typed payloads passed between the configuration &
// action screens, and the Navigator the screens use to reach each other.
package nav

import "github.com/Daskott/sosphone/profile"

type Navigator interface {
	// ShowActions brings up the action screen with p as its payload. The
	// calling screen is discarded & keeps no back-stack entry.
	ShowActions(p profile.Profile)

	// ShowConfig brings up the configuration screen with the given reprompt
	// flags, collapsing any existing instance instead of stacking a new one.
	ShowConfig(flags Reprompt)
}

// Reprompt asks the configuration screen to blank a field & ask for it again.
// Each flag is consumed once acted on.
type Reprompt struct {
	Phone    bool
	Email    bool
	URL      bool
	Location bool
}

// RepromptAll returns a Reprompt with every flag set
func RepromptAll() Reprompt {
	return Reprompt{Phone: true, Email: true, URL: true, Location: true}
}

func (r Reprompt) Has(f profile.Field) bool {
	switch f {
	case profile.Phone:
		return r.Phone
	case profile.Email:
		return r.Email
	case profile.URL:
		return r.URL
	case profile.Location:
		return r.Location
	}
	return false
}

// Consume reports whether f was flagged & clears the flag
func (r *Reprompt) Consume(f profile.Field) bool {
	if !r.Has(f) {
		return false
	}

	switch f {
	case profile.Phone:
		r.Phone = false
	case profile.Email:
		r.Email = false
	case profile.URL:
		r.URL = false
	case profile.Location:
		r.Location = false
	}
	return true
}

// Any reports whether at least one flag is set
func (r Reprompt) Any() bool {
	return r.Phone || r.Email || r.URL || r.Location
}
