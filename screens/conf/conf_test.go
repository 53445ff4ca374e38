package conf

import (
	"testing"
	"time"

	"github.com/Daskott/sosphone/nav"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/profile"
	"github.com/Daskott/sosphone/utils"
	"github.com/stretchr/testify/assert"
)

type testScreen struct {
	*Screen
	store      *prefs.MemoryStore
	navigator  *nav.NavigatorStub
	notices    *platform.NoticeRecorder
	dispatcher *platform.DispatcherStub
}

func newTestScreen(t *testing.T, flags nav.Reprompt) testScreen {
	validator, err := profile.NewValidator("ES")
	if err != nil {
		t.Fatalf("could not create validator: %v", err)
	}

	ts := testScreen{
		store:      prefs.NewMemoryStore(),
		navigator:  &nav.NavigatorStub{},
		notices:    &platform.NoticeRecorder{},
		dispatcher: &platform.DispatcherStub{},
	}

	ts.Screen = New(Deps{
		Store:      ts.store,
		Validator:  validator,
		Navigator:  ts.navigator,
		Notifier:   ts.notices,
		Dispatcher: ts.dispatcher,
	}, flags)

	return ts
}

func TestCreateForwardsStoredProfile(t *testing.T) {
	ts := newTestScreen(t, nav.Reprompt{})
	stored := profile.Form{Phone: "600111222", URL: "example.com"}.Profile()
	profile.Save(ts.store, stored)

	assert.Nil(t, ts.Create())
	assert.Equal(t, Finished, ts.State())
	assert.Equal(t, []profile.Profile{stored}, ts.navigator.Actions)

	ts.Resume()
	assert.Empty(t, ts.notices.Notices, "A finished screen should not resume")
	assert.ErrorIs(t, ts.Submit(), ErrNotActive)
}

func TestCreateShowsPrefilledForm(t *testing.T) {
	ts := newTestScreen(t, nav.Reprompt{})
	ts.store.Set("email", utils.StrPtr("help@example.com"))
	ts.store.Set("location", utils.StrPtr("Plaza Mayor, Madrid"))

	assert.Nil(t, ts.Create())
	assert.Equal(t, FormActive, ts.State())
	assert.Empty(t, ts.navigator.Actions)
	assert.Equal(t, profile.Form{Email: "help@example.com", Location: "Plaza Mayor, Madrid"}, ts.Form())
}

func TestSubmit(t *testing.T) {
	cases := []struct {
		description   string
		form          profile.Form
		expectedField profile.Field
		accepted      bool
	}{
		{
			description:   "Should reject an empty phone",
			form:          profile.Form{Email: "bad", URL: "bad url"},
			expectedField: profile.Phone,
		},
		{
			description:   "Should reject a phone that isn't valid in the region",
			form:          profile.Form{Phone: "123"},
			expectedField: profile.Phone,
		},
		{
			description:   "Should reject an invalid email",
			form:          profile.Form{Phone: "600111222", Email: "help@", URL: "bad url"},
			expectedField: profile.Email,
		},
		{
			description:   "Should reject an invalid url",
			form:          profile.Form{Phone: "600111222", URL: "bad url"},
			expectedField: profile.URL,
		},
		{
			description: "Should accept a valid phone with empty optional fields",
			form:        profile.Form{Phone: "600111222"},
			accepted:    true,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			ts := newTestScreen(t, nav.Reprompt{})
			ts.store.Set("location", utils.StrPtr("Old location"))
			assert.Nil(t, ts.Create())

			ts.Fill(c.form)
			err := ts.Submit()

			if !c.accepted {
				assert.True(t, platform.IsNotice(err), "Expected a notice, got %v", err)
				assert.Equal(t, []string{err.Error()}, ts.notices.Notices, "Exactly one notice per attempt")

				var validationErr *profile.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Equal(t, c.expectedField, validationErr.Field)

				assert.Equal(t, 1, ts.store.Len(), "Store should be unchanged")
				assert.Empty(t, ts.navigator.Actions)
				assert.Equal(t, FormActive, ts.State())
				return
			}

			assert.Nil(t, err)
			assert.Empty(t, ts.notices.Notices)
			assert.Equal(t, Finished, ts.State())

			stored, _ := profile.Load(ts.store)
			assert.Equal(t, "600111222", *stored.Phone)
			assert.Nil(t, stored.Email)
			assert.Nil(t, stored.URL)
			assert.Nil(t, stored.Location, "Empty location should overwrite the old one with absent")
			assert.Equal(t, 1, ts.store.Len())

			assert.Equal(t, []profile.Profile{stored}, ts.navigator.Actions)
		})
	}
}

func TestResumeConsumesRepromptFlags(t *testing.T) {
	ts := newTestScreen(t, nav.Reprompt{Phone: true, URL: true})
	assert.Nil(t, ts.Create())
	ts.Fill(profile.Form{Phone: "600111222", Email: "help@example.com", URL: "example.com"})

	ts.Resume()
	ts.Resume()
	ts.Resume()

	assert.Equal(t, []string{repromptMessages[profile.Phone], repromptMessages[profile.URL]}, ts.notices.Notices)
	assert.Equal(t, profile.Form{Email: "help@example.com"}, ts.Form())

	// Re-delivering the flags is a new event
	ts.NewNavigation(nav.RepromptAll())
	ts.Resume()
	ts.Resume()
	assert.Len(t, ts.notices.Notices, 6)
	assert.Equal(t, profile.Form{}, ts.Form())
}

func TestScheduleAlarm(t *testing.T) {
	ts := newTestScreen(t, nav.Reprompt{})
	ts.deps.Now = func() time.Time { return time.Date(2026, 10, 19, 23, 59, 10, 0, time.UTC) }
	ts.store.Set("phone", utils.StrPtr("600111222"))

	assert.Nil(t, ts.ScheduleAlarm())
	assert.Equal(t, platform.SetAlarm{Hour: 0, Minute: 1, SkipUI: true, Label: "Alarma SOS"}, ts.dispatcher.Last())
	assert.Equal(t, 1, ts.store.Len(), "Scheduling an alarm should not touch the store")

	ts.dispatcher.Unsupported = map[platform.Kind]bool{platform.KindSetAlarm: true}
	err := ts.ScheduleAlarm()
	assert.True(t, platform.IsNotice(err))
	assert.Len(t, ts.dispatcher.Requests, 1)
}
