// Package conf is the configuration screen. On creation it forwards straight
// to the action screen when an emergency phone is already stored, otherwise it
// shows a form for the emergency profile, validates it & persists it.
package conf

import (
	"time"

	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/nav"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/profile"
	"github.com/pkg/errors"
)

const (
	AlarmLabel = "Alarma SOS"
	AlarmDelay = 2 * time.Minute
)

type State int

const (
	BootstrapCheck State = iota
	FormActive
	Finished
)

func (s State) String() string {
	switch s {
	case FormActive:
		return "form-active"
	case Finished:
		return "finished"
	}
	return "bootstrap-check"
}

var (
	ErrNotActive = errors.New("configuration form is not active")

	logg = logger.NewLogger()

	repromptMessages = map[profile.Field]string{
		profile.Phone:    "Enter the new emergency phone number",
		profile.Email:    "Enter the new email",
		profile.URL:      "Enter the new URL",
		profile.Location: "Enter the new location",
	}
)

type Deps struct {
	Store      prefs.Store
	Validator  *profile.Validator
	Navigator  nav.Navigator
	Notifier   platform.Notifier
	Dispatcher platform.Dispatcher

	// Now defaults to time.Now
	Now func() time.Time
}

type Screen struct {
	deps     Deps
	state    State
	form     profile.Form
	reprompt nav.Reprompt
}

func New(deps Deps, flags nav.Reprompt) *Screen {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Screen{deps: deps, reprompt: flags}
}

// Create runs the bootstrap check: with a stored phone the screen forwards the
// stored profile to the action screen & finishes, otherwise the form becomes
// active, pre-filled with whatever is stored.
func (s *Screen) Create() error {
	stored, err := profile.Load(s.deps.Store)
	if err != nil {
		return errors.Wrap(err, "unable to read emergency profile")
	}

	if stored.Phone != nil {
		logg.Debug("emergency phone already configured, forwarding to actions")
		s.state = Finished
		s.deps.Navigator.ShowActions(stored)
		return nil
	}

	s.form = stored.Form()
	s.state = FormActive
	return nil
}

// NewNavigation replaces the screen's reprompt flags, when the screen is
// brought back to the front instead of being recreated
func (s *Screen) NewNavigation(flags nav.Reprompt) {
	s.reprompt = flags
}

// Resume blanks every field flagged for reprompt & tells the user to enter it
// again. Flags are consumed, so resuming again does not repeat the prompt.
func (s *Screen) Resume() {
	if s.state != FormActive {
		return
	}

	for _, f := range profile.Fields {
		if !s.reprompt.Consume(f) {
			continue
		}

		s.form.Set(f, "")
		s.deps.Notifier.Notify(repromptMessages[f])
	}
}

// SetField updates the text of one form input
func (s *Screen) SetField(f profile.Field, value string) {
	s.form.Set(f, value)
}

// Fill replaces the text of every form input
func (s *Screen) Fill(form profile.Form) {
	s.form = form
}

func (s *Screen) Form() profile.Form {
	return s.form
}

func (s *Screen) State() State {
	return s.state
}

// Submit validates the form. The first invalid field is reported to the user
// & returned as a *platform.Notice, leaving the store untouched. A valid form
// is persisted & forwarded to the action screen.
func (s *Screen) Submit() error {
	if s.state != FormActive {
		return ErrNotActive
	}

	err := s.deps.Validator.Validate(s.form)
	if err != nil {
		var validationErr *profile.ValidationError
		if errors.As(err, &validationErr) {
			return platform.ShowErr(s.deps.Notifier, validationErr.Error(), validationErr)
		}
		return err
	}

	submitted := s.form.Profile()
	err = profile.Save(s.deps.Store, submitted)
	if err != nil {
		return errors.Wrap(err, "unable to save emergency profile")
	}

	logg.Infof("emergency profile saved for region %v", s.deps.Validator.Region())

	s.state = Finished
	s.deps.Navigator.ShowActions(submitted)
	return nil
}

// ScheduleAlarm sets an alarm AlarmDelay from now. It never touches the store.
func (s *Screen) ScheduleAlarm() error {
	at := s.deps.Now().Add(AlarmDelay)

	req := platform.SetAlarm{
		Hour:   at.Hour(),
		Minute: at.Minute(),
		SkipUI: true,
		Label:  AlarmLabel,
	}

	if !s.deps.Dispatcher.CanHandle(req) {
		return platform.Show(s.deps.Notifier, "No alarm clock available")
	}

	return s.deps.Dispatcher.Dispatch(req)
}
