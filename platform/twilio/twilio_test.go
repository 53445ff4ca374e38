package twilio

import (
	"testing"

	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/shared"
	"github.com/stretchr/testify/assert"
)

func TestE164(t *testing.T) {
	tests := []struct {
		description string
		phone       string
		region      string
		expected    string
		expectErr   bool
	}{
		{"national spanish number", "600111222", "ES", "+34600111222", false},
		{"number already international", "+34 600 111 222", "US", "+34600111222", false},
		{"us number", "(202) 555-0143", "US", "+12025550143", false},
		{"not a number", "call me", "ES", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			number, err := E164(tt.phone, tt.region)
			if tt.expectErr {
				assert.NotNil(t, err)
				return
			}

			assert.Nil(t, err)
			assert.Equal(t, tt.expected, number)
		})
	}
}

func TestHandleInTestMode(t *testing.T) {
	cw := NewClient(shared.TwilioConfig{AccountSid: "AC123", AuthToken: "token", From: "+15005550006"}, "ES", true)

	err := cw.Handle(platform.DirectCall{Phone: "600111222"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"+34600111222"}, cw.Placed)

	err = cw.Handle(platform.ViewURL{URL: "http://example.com"})
	assert.NotNil(t, err)
	assert.Len(t, cw.Placed, 1)
}
