// Package twilio places direct calls through the twilio voice API
package twilio

import (
	"fmt"

	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/shared"
	"github.com/nyaruka/phonenumbers"
	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const callTwiml = `<Response><Say>This is an emergency call placed from sosphone. Please stay on the line.</Say><Pause length="30"/></Response>`

var logg = logger.NewLogger()

type ClientWrapper struct {
	client   *twilio.RestClient
	config   shared.TwilioConfig
	region   string
	testMode bool

	// Placed holds the numbers dialled in test mode
	Placed []string
}

// NewClient creates a twilio client. In test mode no call ever leaves the machine.
func NewClient(config shared.TwilioConfig, region string, testMode bool) *ClientWrapper {
	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &ClientWrapper{
		client:   client,
		config:   config,
		region:   region,
		testMode: testMode,
	}
}

// Handle places the call described by a platform.DirectCall request
func (cw *ClientWrapper) Handle(req platform.Request) error {
	call, ok := req.(platform.DirectCall)
	if !ok {
		return fmt.Errorf("twilio can't handle %v requests", req.Kind())
	}

	_, err := cw.PlaceCall(call.Phone)
	return err
}

// PlaceCall dials 'to' & returns the sid of the created call
func (cw *ClientWrapper) PlaceCall(to string) (string, error) {
	number, err := E164(to, cw.region)
	if err != nil {
		return "", err
	}

	if cw.testMode {
		logg.Infof("test mode, skipping call to %v", number)
		cw.Placed = append(cw.Placed, number)
		return "", nil
	}

	params := &openapi.CreateCallParams{}
	params.SetTo(number)
	params.SetFrom(cw.config.From)
	params.SetTwiml(callTwiml)

	resp, err := cw.client.ApiV2010.CreateCall(params)
	if err != nil {
		return "", errors.Wrapf(err, "unable to call %v", number)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}

	logg.Infof("call to %v placed, sid=%v", number, sid)
	return sid, nil
}

// E164 formats a number stored in the region's national format as +<cc><number>
func E164(phone, region string) (string, error) {
	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse phone number %q", phone)
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
