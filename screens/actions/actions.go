// Package actions is the main screen: it shows the emergency profile it was
// navigated to with & turns each button press into a platform request.
package actions

import (
	"strings"

	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/nav"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/profile"
	"github.com/Daskott/sosphone/utils"
	"github.com/pkg/errors"
)

const (
	AppPackage   = "sosphone"
	EmailSubject = "SOS"
	EmailBody    = "I need help. Please contact me as soon as possible."
)

const (
	msgNoPhone          = "No emergency phone configured"
	msgNoURL            = "No URL configured"
	msgNoLocation       = "No location configured"
	msgNoEmail          = "No email configured"
	msgNoHandler        = "No application can handle this action"
	msgPermissionNeeded = "You need to enable call permissions"
)

var logg = logger.NewLogger()

type Deps struct {
	Store       prefs.Store
	Navigator   nav.Navigator
	Notifier    platform.Notifier
	Dispatcher  platform.Dispatcher
	Permissions platform.Permissions
}

type Screen struct {
	deps Deps

	// payload is what the screen was last navigated with, current is
	// what the buttons act on. current is refreshed from payload on Resume.
	payload profile.Profile
	current profile.Profile

	callGranted bool
	handshake   *platform.Handshake
}

func New(deps Deps, payload profile.Profile) *Screen {
	return &Screen{deps: deps, payload: payload}
}

// Create asks for the call permission up front, unless it is already granted
func (s *Screen) Create() {
	if !s.deps.Permissions.Granted(platform.CallPhone) {
		s.requestCallPermission()
	}
}

// NewPayload replaces the navigation payload, when the screen is brought
// back to the front instead of being recreated
func (s *Screen) NewPayload(p profile.Profile) {
	s.payload = p
}

// Resume reloads the profile from the navigation payload & re-checks the call
// permission, which may have changed while the screen was in the background
func (s *Screen) Resume() {
	s.callGranted = s.deps.Permissions.Granted(platform.CallPhone)
	s.current = s.payload
}

func (s *Screen) Profile() profile.Profile {
	return s.current
}

func (s *Screen) CallGranted() bool {
	return s.callGranted
}

// Call places a direct call to the emergency phone. Without the call
// permission it asks for it instead & returns nil.
func (s *Screen) Call() error {
	s.callGranted = s.deps.Permissions.Granted(platform.CallPhone)
	if !s.callGranted {
		s.requestCallPermission()
		return nil
	}

	phone := utils.StrVal(s.current.Phone)
	if phone == "" {
		return platform.Show(s.deps.Notifier, msgNoPhone)
	}

	return s.dispatch(platform.DirectCall{Phone: phone})
}

// OpenURL opens the emergency url, defaulting to http:// when it has no scheme
func (s *Screen) OpenURL() error {
	completeURL := utils.StrVal(s.current.URL)
	if completeURL == "" {
		return platform.Show(s.deps.Notifier, msgNoURL)
	}

	if !strings.HasPrefix(completeURL, "http://") && !strings.HasPrefix(completeURL, "https://") {
		completeURL = "http://" + completeURL
	}

	return s.dispatch(platform.ViewURL{URL: completeURL})
}

// OpenLocation searches for the emergency location on a map
func (s *Screen) OpenLocation() error {
	location := utils.StrVal(s.current.Location)
	if location == "" {
		return platform.Show(s.deps.Notifier, msgNoLocation)
	}

	return s.dispatch(platform.ViewLocation{Latitude: 0, Longitude: 0, Query: platform.Encode(location)})
}

// SendEmail starts an email to the emergency address
func (s *Screen) SendEmail() error {
	email := utils.StrVal(s.current.Email)
	if email == "" {
		return platform.Show(s.deps.Notifier, msgNoEmail)
	}

	return s.dispatch(platform.ComposeEmail{To: email, Subject: EmailSubject, Body: EmailBody})
}

// Reconfigure clears the stored profile & goes back to the configuration
// screen, asking for every field again
func (s *Screen) Reconfigure() error {
	err := profile.Clear(s.deps.Store)
	if err != nil {
		return errors.Wrap(err, "unable to clear emergency profile")
	}

	s.deps.Navigator.ShowConfig(nav.RepromptAll())
	return nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *Screen) dispatch(req platform.Request) error {
	if !s.deps.Dispatcher.CanHandle(req) {
		logg.Warnf("no handler for %v request", req.Kind())
		return platform.ShowErr(s.deps.Notifier, msgNoHandler, platform.ErrNoHandler)
	}

	return s.deps.Dispatcher.Dispatch(req)
}

// requestCallPermission starts a permission handshake, unless one is still waiting on the user
func (s *Screen) requestCallPermission() {
	if s.handshake != nil && s.handshake.Pending() {
		return
	}

	handshake := platform.NewHandshake(s.onCallPermissionResult)
	s.handshake = handshake
	s.deps.Permissions.Request(platform.CallPhone, func(granted bool) {
		handshake.Resolve(granted)
	})
}

func (s *Screen) onCallPermissionResult(granted bool) {
	if granted {
		s.callGranted = true
		return
	}

	s.deps.Notifier.Notify(msgPermissionNeeded)

	settings := platform.AppSettings{Package: AppPackage}
	if !s.deps.Dispatcher.CanHandle(settings) {
		return
	}

	err := s.deps.Dispatcher.Dispatch(settings)
	if err != nil {
		logg.Error(err)
	}
}
