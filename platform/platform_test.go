package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		description string
		input       string
		expected    string
	}{
		{"Should encode spaces & commas", "Plaza Mayor, Madrid", "Plaza%20Mayor%2C%20Madrid"},
		{"Should keep unreserved characters", "a-b_c.d~e!f*g'h(i)", "a-b_c.d~e!f*g'h(i)"},
		{"Should encode reserved characters", "a&b=c/d?e#f+g", "a%26b%3Dc%2Fd%3Fe%23f%2Bg"},
		{"Should encode utf-8 bytes", "Cádiz", "C%C3%A1diz"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			assert.Equal(t, c.expected, Encode(c.input))
		})
	}
}

func TestRequestURIs(t *testing.T) {
	assert.Equal(t, "tel:600111222", DirectCall{Phone: "600111222"}.URI())
	assert.Equal(t, "http://example.com", ViewURL{URL: "http://example.com"}.URI())
	assert.Equal(t, "geo:0,0?q=Plaza%20Mayor%2C%20Madrid",
		ViewLocation{Query: Encode("Plaza Mayor, Madrid")}.URI())
	assert.Equal(t, "mailto:help@example.com", ComposeEmail{To: "help@example.com"}.URI())
	assert.Equal(t, "alarm:07:05", SetAlarm{Hour: 7, Minute: 5}.URI())
	assert.Equal(t, "package:sosphone", AppSettings{Package: "sosphone"}.URI())
}

func TestRouter(t *testing.T) {
	router := NewRouter()
	calls := []string{}

	err := router.Register(KindDirectCall, func(req Request) error {
		calls = append(calls, req.(DirectCall).Phone)
		return nil
	})
	assert.Nil(t, err)

	err = router.Register(KindDirectCall, func(Request) error { return nil })
	assert.True(t, errors.Is(err, ErrDuplicateHandler))

	assert.True(t, router.CanHandle(DirectCall{}))
	assert.False(t, router.CanHandle(ViewURL{}))
	assert.Equal(t, []Kind{KindDirectCall}, router.Kinds())

	assert.Nil(t, router.Dispatch(DirectCall{Phone: "600111222"}))
	assert.Equal(t, []string{"600111222"}, calls)

	err = router.Dispatch(ViewURL{URL: "http://example.com"})
	assert.True(t, errors.Is(err, ErrNoHandler))

	boom := errors.New("boom")
	router.Register(KindSetAlarm, func(Request) error { return boom })
	err = router.Dispatch(SetAlarm{})
	assert.True(t, errors.Is(err, boom), "Handler errors should be wrapped, not swallowed")
}

func TestHandshake(t *testing.T) {
	results := []bool{}
	handshake := NewHandshake(func(granted bool) { results = append(results, granted) })

	assert.True(t, handshake.Pending())
	assert.Equal(t, "unresolved", handshake.State().String())

	assert.True(t, handshake.Resolve(false))
	assert.False(t, handshake.Resolve(true), "A handshake only resolves once")

	assert.Equal(t, Denied, handshake.State())
	assert.Equal(t, []bool{false}, results)
}

func TestShow(t *testing.T) {
	recorder := &NoticeRecorder{}
	cause := errors.New("cause")

	err := error(ShowErr(recorder, "Something went wrong", cause))
	assert.Equal(t, []string{"Something went wrong"}, recorder.Notices)
	assert.True(t, IsNotice(err))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsNotice(cause))
}

func TestPermissionsStub(t *testing.T) {
	stub := &PermissionsStub{}
	results := []bool{}

	stub.Request(CallPhone, func(granted bool) { results = append(results, granted) })
	assert.Empty(t, results, "Request should stay pending without an answer")

	stub.Resolve(true)
	stub.Resolve(false)
	assert.Equal(t, []bool{true}, results)
	assert.True(t, stub.Granted(CallPhone))
}

func TestRouterKindsAreSorted(t *testing.T) {
	router := NewRouter()
	for _, kind := range []Kind{KindViewURL, KindAppSettings, KindSetAlarm, KindDirectCall, KindComposeEmail} {
		assert.Nil(t, router.Register(kind, func(Request) error { return nil }))
	}

	expected := []Kind{KindAppSettings, KindComposeEmail, KindDirectCall, KindSetAlarm, KindViewURL}
	for i := 0; i < 5; i++ {
		assert.Equal(t, expected, router.Kinds())
	}
}
