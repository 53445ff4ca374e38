// Package platform describes the collaborators the screens hand work off to:
// the dialer, browser, map & mail apps, the alarm clock, the permission system
// and the notice sink. Screens only build requests, handlers carry them out.
package platform

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindDirectCall   Kind = "direct-call"
	KindViewURL      Kind = "view-url"
	KindViewLocation Kind = "view-location"
	KindComposeEmail Kind = "compose-email"
	KindSetAlarm     Kind = "set-alarm"
	KindAppSettings  Kind = "app-settings"
)

type Request interface {
	Kind() Kind
	URI() string
}

// DirectCall places a call to Phone without going through a dialer screen
type DirectCall struct {
	Phone string
}

func (r DirectCall) Kind() Kind   { return KindDirectCall }
func (r DirectCall) URI() string { return "tel:" + r.Phone }

// ViewURL opens an absolute web address
type ViewURL struct {
	URL string
}

func (r ViewURL) Kind() Kind   { return KindViewURL }
func (r ViewURL) URI() string { return r.URL }

// ViewLocation shows Query on a map, anchored at Latitude,Longitude.
// Query is already percent-encoded.
type ViewLocation struct {
	Latitude  float64
	Longitude float64
	Query     string
}

func (r ViewLocation) Kind() Kind { return KindViewLocation }
func (r ViewLocation) URI() string {
	return fmt.Sprintf("geo:%v,%v?q=%s", r.Latitude, r.Longitude, r.Query)
}

// ComposeEmail opens a new message addressed to To
type ComposeEmail struct {
	To      string
	Subject string
	Body    string
}

func (r ComposeEmail) Kind() Kind   { return KindComposeEmail }
func (r ComposeEmail) URI() string { return "mailto:" + r.To }

// SetAlarm sets an alarm for Hour:Minute (24h clock)
type SetAlarm struct {
	Hour   int
	Minute int
	SkipUI bool
	Label  string
}

func (r SetAlarm) Kind() Kind   { return KindSetAlarm }
func (r SetAlarm) URI() string { return fmt.Sprintf("alarm:%02d:%02d", r.Hour, r.Minute) }

// AppSettings opens the platform settings page of Package, where permissions are managed
type AppSettings struct {
	Package string
}

func (r AppSettings) Kind() Kind   { return KindAppSettings }
func (r AppSettings) URI() string { return "package:" + r.Package }

// Encode percent-encodes every byte of s except letters, digits & _-!.~'()*
// e.g. "Plaza Mayor, Madrid" -> "Plaza%20Mayor%2C%20Madrid"
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_-!.~'()*", c) >= 0
}
