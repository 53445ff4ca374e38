package shared

import (
	"strings"

	"github.com/go-playground/validator"
	"github.com/pkg/errors"
)

const (
	DEFAULT_REGION      = "ES"
	PREFS_STORE_NAME    = "sosphone_prefs"
	PLATFORM_STORE_NAME = "sosphone_platform"
)

type Config struct {
	Sosphone SosphoneConfig `mapstructure:"sosphone" validate:"required"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite" validate:"required"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
	Google   GoogleConfig   `mapstructure:"google"`
}

type SosphoneConfig struct {
	Region   string `mapstructure:"region" validate:"required,len=2"`
	DataDir  string `mapstructure:"dataDir"`
	TimeZone string `mapstructure:"timeZone"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase" validate:"required"`
}

type TwilioConfig struct {
	AccountSid string `mapstructure:"accountSid" validate:"required_with=AuthToken"`
	AuthToken  string `mapstructure:"authToken" validate:"required_with=AccountSid"`
	From       string `mapstructure:"from" validate:"required_with=AccountSid"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix" validate:"required_with=Bucket"`
}

// Enabled reports whether twilio credentials were provided
func (tc TwilioConfig) Enabled() bool {
	return tc.AccountSid != "" && tc.AuthToken != ""
}

// Validate checks the config against its 'validate' tags & fills in defaults
func (c *Config) Validate() error {
	if c.Sosphone.Region == "" {
		c.Sosphone.Region = DEFAULT_REGION
	}
	c.Sosphone.Region = strings.ToUpper(c.Sosphone.Region)

	err := validator.New().Struct(c)
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}

	return nil
}
