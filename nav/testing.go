package nav

import "github.com/Daskott/sosphone/profile"

// NavigatorStub records navigation instead of switching screens
type NavigatorStub struct {
	Actions []profile.Profile
	Configs []Reprompt
}

func (ns *NavigatorStub) ShowActions(p profile.Profile) {
	ns.Actions = append(ns.Actions, p)
}

func (ns *NavigatorStub) ShowConfig(flags Reprompt) {
	ns.Configs = append(ns.Configs, flags)
}
