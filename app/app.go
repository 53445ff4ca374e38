// Package app hosts the screens: it keeps the back stack & implements the
// navigation between the configuration & action screens.
package app

import (
	"time"

	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/nav"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/profile"
	"github.com/Daskott/sosphone/screens/actions"
	"github.com/Daskott/sosphone/screens/conf"
)

var logg = logger.NewLogger()

type Deps struct {
	Store       prefs.Store
	Validator   *profile.Validator
	Notifier    platform.Notifier
	Dispatcher  platform.Dispatcher
	Permissions platform.Permissions
	Now         func() time.Time
}

type screen interface {
	Resume()
}

// App is a nav.Navigator over a stack of screens, top of the stack last
type App struct {
	deps  Deps
	stack []screen
	err   error
}

func New(deps Deps) *App {
	return &App{deps: deps}
}

// Launch starts the app from its entry point, the configuration screen
func (a *App) Launch() error {
	a.stack = nil
	a.err = nil

	a.ShowConfig(nav.Reprompt{})
	return a.err
}

// Err returns the error, if any, raised while creating the last screen navigated to
func (a *App) Err() error {
	return a.err
}

// Foreground brings the app back from the background, resuming the top screen
func (a *App) Foreground() {
	if top := a.top(); top != nil {
		top.Resume()
	}
}

func (a *App) ShowActions(p profile.Profile) {
	a.dropFinished()

	for i := len(a.stack) - 1; i >= 0; i-- {
		existing, ok := a.stack[i].(*actions.Screen)
		if !ok {
			continue
		}

		logg.Debugf("bringing existing action screen to front, dropping %v screen(s)", len(a.stack)-i-1)
		a.stack = a.stack[:i+1]
		existing.NewPayload(p)
		existing.Resume()
		return
	}

	created := actions.New(actions.Deps{
		Store:       a.deps.Store,
		Navigator:   a,
		Notifier:    a.deps.Notifier,
		Dispatcher:  a.deps.Dispatcher,
		Permissions: a.deps.Permissions,
	}, p)

	a.stack = append(a.stack, created)
	created.Create()
	created.Resume()
}

func (a *App) ShowConfig(flags nav.Reprompt) {
	for i := len(a.stack) - 1; i >= 0; i-- {
		existing, ok := a.stack[i].(*conf.Screen)
		if !ok || existing.State() == conf.Finished {
			continue
		}

		logg.Debugf("bringing existing configuration screen to front, dropping %v screen(s)", len(a.stack)-i-1)
		a.stack = a.stack[:i+1]
		existing.NewNavigation(flags)
		existing.Resume()
		return
	}

	created := conf.New(a.confDeps(), flags)

	a.stack = append(a.stack, created)
	a.err = created.Create()
	if a.err != nil {
		return
	}

	// A configuration screen that forwarded straight to actions is already gone
	if created.State() == conf.Finished {
		return
	}
	created.Resume()
}

// Config returns the configuration screen, if it's the one in front
func (a *App) Config() (*conf.Screen, bool) {
	found, ok := a.top().(*conf.Screen)
	return found, ok
}

// Actions returns the action screen, if it's the one in front
func (a *App) Actions() (*actions.Screen, bool) {
	found, ok := a.top().(*actions.Screen)
	return found, ok
}

// ScheduleAlarm sets the SOS alarm from the configuration screen in front.
// When the action screen is in front, a configuration screen that is never
// created or shown sets it, so the stack & store are left as they are.
func (a *App) ScheduleAlarm() error {
	screen, ok := a.Config()
	if !ok {
		screen = conf.New(a.confDeps(), nav.Reprompt{})
	}
	return screen.ScheduleAlarm()
}

// Depth returns the number of screens on the back stack
func (a *App) Depth() int {
	return len(a.stack)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (a *App) top() screen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

// dropFinished removes configuration screens that navigated away & finished
func (a *App) dropFinished() {
	kept := a.stack[:0]
	for _, s := range a.stack {
		if c, ok := s.(*conf.Screen); ok && c.State() == conf.Finished {
			continue
		}
		kept = append(kept, s)
	}
	a.stack = kept
}

func (a *App) confDeps() conf.Deps {
	return conf.Deps{
		Store:      a.deps.Store,
		Validator:  a.deps.Validator,
		Navigator:  a,
		Notifier:   a.deps.Notifier,
		Dispatcher: a.deps.Dispatcher,
		Now:        a.deps.Now,
	}
}
