package platform

import "errors"

type Notifier interface {
	// Notify shows msg to the user, once
	Notify(msg string)
}

// NotifierFunc lets an ordinary function be used as a Notifier
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Notice is a failure the user has already been told about
type Notice struct {
	Msg string
	Err error
}

func (n *Notice) Error() string {
	return n.Msg
}

func (n *Notice) Unwrap() error {
	return n.Err
}

// Show displays msg through notifier & returns it as a *Notice
func Show(notifier Notifier, msg string) *Notice {
	notifier.Notify(msg)
	return &Notice{Msg: msg}
}

// ShowErr is Show, keeping cause as the notice's underlying error
func ShowErr(notifier Notifier, msg string, cause error) *Notice {
	notice := Show(notifier, msg)
	notice.Err = cause
	return notice
}

// IsNotice reports whether err is, or wraps, a *Notice
func IsNotice(err error) bool {
	var notice *Notice
	return errors.As(err, &notice)
}
