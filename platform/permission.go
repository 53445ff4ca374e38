package platform

import "sync"

type Permission string

const CallPhone Permission = "call_phone"

type Permissions interface {
	Granted(p Permission) bool

	// Request asks the user for p. onResult is called exactly once, possibly
	// after Request has returned.
	Request(p Permission, onResult func(granted bool))
}

type PermissionState int

const (
	Unresolved PermissionState = iota
	Granted
	Denied
)

func (s PermissionState) String() string {
	switch s {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "unresolved"
}

// Handshake is one permission request: it starts unresolved & resolves once,
// to granted or denied. Later results are dropped.
type Handshake struct {
	mu       sync.Mutex
	state    PermissionState
	onResult func(granted bool)
}

func NewHandshake(onResult func(granted bool)) *Handshake {
	return &Handshake{onResult: onResult}
}

// Resolve settles the handshake & fires the callback. It reports false if
// the handshake had already been resolved.
func (h *Handshake) Resolve(granted bool) bool {
	h.mu.Lock()
	if h.state != Unresolved {
		h.mu.Unlock()
		return false
	}

	h.state = Denied
	if granted {
		h.state = Granted
	}
	h.mu.Unlock()

	if h.onResult != nil {
		h.onResult(granted)
	}
	return true
}

func (h *Handshake) State() PermissionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Handshake) Pending() bool {
	return h.State() == Unresolved
}
