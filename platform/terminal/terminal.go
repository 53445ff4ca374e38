// Package terminal carries out platform requests on a terminal: notices are
// printed, external apps are replaced by their URI & permissions are asked
// for with a y/N prompt. Answers are remembered in a prefs store.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Daskott/sosphone/colors"
	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/prefs"
)

const (
	grantedValue = "granted"
	deniedValue  = "denied"
)

var (
	logg = logger.NewLogger()

	prompts = map[platform.Permission]string{
		platform.CallPhone: "Allow sosphone to place phone calls?",
	}

	labels = map[platform.Kind]string{
		platform.KindDirectCall:   "call",
		platform.KindViewURL:      "open",
		platform.KindViewLocation: "map",
		platform.KindComposeEmail: "email",
		platform.KindSetAlarm:     "alarm",
		platform.KindAppSettings:  "settings",
	}
)

type Terminal struct {
	out    io.Writer
	in     *bufio.Reader
	grants prefs.Store
}

func New(out io.Writer, in io.Reader, grants prefs.Store) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in), grants: grants}
}

func (t *Terminal) Notify(msg string) {
	fmt.Fprintf(t.out, "%s %s\n", colors.Yellow("!"), msg)
}

// Open prints the URI of req in place of launching the app that would handle it
func (t *Terminal) Open(req platform.Request) error {
	uri := req.URI()
	if email, ok := req.(platform.ComposeEmail); ok {
		uri = fmt.Sprintf("%s?subject=%s&body=%s", uri, platform.Encode(email.Subject), platform.Encode(email.Body))
	}

	label, ok := labels[req.Kind()]
	if !ok {
		label = string(req.Kind())
	}

	_, err := fmt.Fprintf(t.out, "%s %s\n", colors.Blue("["+label+"]"), uri)
	return err
}

// Settings shows how to change sosphone's permissions
func (t *Terminal) Settings(req platform.Request) error {
	_, err := fmt.Fprintf(t.out, "%s run '%s' to allow calls\n",
		colors.Blue("[settings]"), colors.Bold("sosphone permission grant call"))
	return err
}

func (t *Terminal) Granted(p platform.Permission) bool {
	value, err := t.grants.Get(grantKey(p))
	if err != nil {
		logg.Errorf("unable to read %v permission: %v", p, err)
		return false
	}
	return value != nil && *value == grantedValue
}

// Request prompts for p on the terminal. Anything but y/yes, including no
// answer at all, is a denial. Once denied, p is not prompted for again until
// it's revoked.
func (t *Terminal) Request(p platform.Permission, onResult func(granted bool)) {
	handshake := platform.NewHandshake(onResult)

	state, err := t.State(p)
	if err != nil {
		logg.Errorf("unable to read %v permission: %v", p, err)
	}
	if state != platform.Unresolved {
		handshake.Resolve(state == platform.Granted)
		return
	}

	prompt, ok := prompts[p]
	if !ok {
		prompt = fmt.Sprintf("Allow sosphone the %v permission?", p)
	}
	fmt.Fprintf(t.out, "%s [y/N]: ", colors.Bold(prompt))

	answer, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		logg.Errorf("unable to read answer: %v", err)
	}
	if err == io.EOF && answer == "" {
		fmt.Fprintln(t.out)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	granted := answer == "y" || answer == "yes"

	if err := t.SetGrant(p, granted); err != nil {
		logg.Errorf("unable to save %v permission: %v", p, err)
	}

	handshake.Resolve(granted)
}

// SetGrant records the answer for p, as if the user changed it in settings
func (t *Terminal) SetGrant(p platform.Permission, granted bool) error {
	value := deniedValue
	if granted {
		value = grantedValue
	}
	return t.grants.Set(grantKey(p), &value)
}

// Revoke forgets the answer for p, the next use will prompt again
func (t *Terminal) Revoke(p platform.Permission) error {
	return t.grants.Set(grantKey(p), nil)
}

// State returns what's been recorded for p
func (t *Terminal) State(p platform.Permission) (platform.PermissionState, error) {
	value, err := t.grants.Get(grantKey(p))
	if err != nil {
		return platform.Unresolved, err
	}

	switch {
	case value == nil:
		return platform.Unresolved, nil
	case *value == grantedValue:
		return platform.Granted, nil
	}
	return platform.Denied, nil
}

func grantKey(p platform.Permission) string {
	return "permission." + string(p)
}
