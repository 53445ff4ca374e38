package actions

import (
	"errors"
	"testing"

	"github.com/Daskott/sosphone/nav"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/profile"
	"github.com/Daskott/sosphone/utils"
	"github.com/stretchr/testify/assert"
)

type testScreen struct {
	*Screen
	store       *prefs.MemoryStore
	navigator   *nav.NavigatorStub
	notices     *platform.NoticeRecorder
	dispatcher  *platform.DispatcherStub
	permissions *platform.PermissionsStub
}

func newTestScreen(payload profile.Profile, callGranted bool) testScreen {
	ts := testScreen{
		store:       prefs.NewMemoryStore(),
		navigator:   &nav.NavigatorStub{},
		notices:     &platform.NoticeRecorder{},
		dispatcher:  &platform.DispatcherStub{},
		permissions: &platform.PermissionsStub{Grants: map[platform.Permission]bool{platform.CallPhone: callGranted}},
	}

	ts.Screen = New(Deps{
		Store:       ts.store,
		Navigator:   ts.navigator,
		Notifier:    ts.notices,
		Dispatcher:  ts.dispatcher,
		Permissions: ts.permissions,
	}, payload)

	return ts
}

func fullProfile() profile.Profile {
	return profile.Form{
		Phone:    "600111222",
		Email:    "help@example.com",
		URL:      "example.com",
		Location: "Plaza Mayor, Madrid",
	}.Profile()
}

func TestCreateRequestsCallPermissionOnce(t *testing.T) {
	ts := newTestScreen(fullProfile(), false)

	ts.Create()
	assert.Equal(t, 1, ts.permissions.Requests)

	// A second request while the first is pending is not sent
	assert.Nil(t, ts.Call())
	assert.Equal(t, 1, ts.permissions.Requests)

	ts.permissions.Resolve(true)
	assert.True(t, ts.CallGranted())

	granted := newTestScreen(fullProfile(), true)
	granted.Create()
	assert.Equal(t, 0, granted.permissions.Requests, "Should not ask for a permission already granted")
}

func TestCallPermissionDenied(t *testing.T) {
	ts := newTestScreen(fullProfile(), false)
	deny := false
	ts.permissions.Answer = &deny

	ts.Create()
	ts.Resume()

	assert.False(t, ts.CallGranted())
	assert.Equal(t, []string{msgPermissionNeeded}, ts.notices.Notices)
	assert.Equal(t, platform.AppSettings{Package: AppPackage}, ts.dispatcher.Last())

	// Pressing call asks again, without calling
	assert.Nil(t, ts.Call())
	assert.Equal(t, 2, ts.permissions.Requests)
	assert.Len(t, ts.dispatcher.Requests, 2)
	for _, req := range ts.dispatcher.Requests {
		assert.Equal(t, platform.KindAppSettings, req.Kind())
	}
}

func TestResumeReloadsPayloadAndPermission(t *testing.T) {
	ts := newTestScreen(fullProfile(), false)
	ts.Resume()
	assert.Equal(t, fullProfile(), ts.Profile())
	assert.False(t, ts.CallGranted())

	// Permission granted from settings & a new payload while in the background
	ts.permissions.Grants[platform.CallPhone] = true
	updated := profile.Form{Phone: "600333444"}.Profile()
	ts.NewPayload(updated)
	assert.Equal(t, fullProfile(), ts.Profile(), "Payload applies on resume")

	ts.Resume()
	assert.Equal(t, updated, ts.Profile())
	assert.True(t, ts.CallGranted())
}

func TestActions(t *testing.T) {
	cases := []struct {
		description     string
		payload         profile.Profile
		press           func(s *Screen) error
		expectedRequest platform.Request
		expectedNotice  string
	}{
		{
			description:     "Should call the emergency phone",
			payload:         fullProfile(),
			press:           (*Screen).Call,
			expectedRequest: platform.DirectCall{Phone: "600111222"},
		},
		{
			description:    "Should NOT call without a phone",
			payload:        profile.Profile{},
			press:          (*Screen).Call,
			expectedNotice: msgNoPhone,
		},
		{
			description:     "Should default to http when the url has no scheme",
			payload:         fullProfile(),
			press:           (*Screen).OpenURL,
			expectedRequest: platform.ViewURL{URL: "http://example.com"},
		},
		{
			description:     "Should keep an https url as is",
			payload:         profile.Form{Phone: "600111222", URL: "https://example.com/sos"}.Profile(),
			press:           (*Screen).OpenURL,
			expectedRequest: platform.ViewURL{URL: "https://example.com/sos"},
		},
		{
			description:    "Should NOT open a missing url",
			payload:        profile.Form{Phone: "600111222"}.Profile(),
			press:          (*Screen).OpenURL,
			expectedNotice: msgNoURL,
		},
		{
			description:     "Should search the encoded location on a map",
			payload:         fullProfile(),
			press:           (*Screen).OpenLocation,
			expectedRequest: platform.ViewLocation{Query: "Plaza%20Mayor%2C%20Madrid"},
		},
		{
			description:    "Should NOT open a missing location",
			payload:        profile.Form{Phone: "600111222"}.Profile(),
			press:          (*Screen).OpenLocation,
			expectedNotice: msgNoLocation,
		},
		{
			description:     "Should compose an email to the emergency address",
			payload:         fullProfile(),
			press:           (*Screen).SendEmail,
			expectedRequest: platform.ComposeEmail{To: "help@example.com", Subject: EmailSubject, Body: EmailBody},
		},
		{
			description:    "Should NOT compose an email without an address",
			payload:        profile.Form{Phone: "600111222"}.Profile(),
			press:          (*Screen).SendEmail,
			expectedNotice: msgNoEmail,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			ts := newTestScreen(c.payload, true)
			ts.Create()
			ts.Resume()

			err := c.press(ts.Screen)

			if c.expectedNotice != "" {
				assert.True(t, platform.IsNotice(err))
				assert.Equal(t, []string{c.expectedNotice}, ts.notices.Notices)
				assert.Empty(t, ts.dispatcher.Requests)
				return
			}

			assert.Nil(t, err)
			assert.Empty(t, ts.notices.Notices)
			assert.Equal(t, []platform.Request{c.expectedRequest}, ts.dispatcher.Requests)
		})
	}
}

func TestActionWithoutHandler(t *testing.T) {
	ts := newTestScreen(fullProfile(), true)
	ts.dispatcher.Unsupported = map[platform.Kind]bool{platform.KindViewLocation: true}
	ts.Resume()

	err := ts.OpenLocation()
	assert.True(t, platform.IsNotice(err))
	assert.True(t, errors.Is(err, platform.ErrNoHandler))
	assert.Equal(t, []string{msgNoHandler}, ts.notices.Notices)
	assert.Empty(t, ts.dispatcher.Requests)
}

func TestReconfigure(t *testing.T) {
	ts := newTestScreen(fullProfile(), true)
	profile.Save(ts.store, fullProfile())
	ts.store.Set("unrelated", utils.StrPtr("kept"))

	assert.Nil(t, ts.Reconfigure())

	stored, _ := profile.Load(ts.store)
	assert.Equal(t, profile.Profile{}, stored)
	assert.Equal(t, 1, ts.store.Len(), "Only the profile keys should be cleared")
	assert.Equal(t, []nav.Reprompt{nav.RepromptAll()}, ts.navigator.Configs)
}
