package profile

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/Daskott/sosphone/logger"
	"github.com/go-playground/validator"
	"github.com/nyaruka/phonenumbers"
)

var (
	logg = logger.NewLogger()

	webURLSchemes = map[string]bool{"http": true, "https": true, "rtsp": true, "ftp": true}
	leadingScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

	// user facing message for each failing (field, validation tag) pair
	rejectionMessages = map[Field]map[string]string{
		Phone: {
			"required":     "An emergency phone number is required",
			"phone_number": "The phone number is not valid",
		},
		Email: {"email": "The email format is not valid"},
		URL:   {"web_url": "The URL format is not valid"},
	}

	formFields = map[string]Field{
		"Phone":    Phone,
		"Email":    Email,
		"URL":      URL,
		"Location": Location,
	}
)

// ValidationError describes the first form field that failed validation
type ValidationError struct {
	Field Field
	Tag   string
}

func (e *ValidationError) Error() string {
	if msg, ok := rejectionMessages[e.Field][e.Tag]; ok {
		return msg
	}
	return fmt.Sprintf("%v is not valid", e.Field)
}

// Validator checks a Form in field order, stopping at the first failure.
// Phone numbers are checked against the numbering plan of a fixed region.
type Validator struct {
	validate *validator.Validate
	region   string
}

func NewValidator(region string) (*Validator, error) {
	v := &Validator{validate: validator.New(), region: strings.ToUpper(region)}

	if _, ok := phonenumbers.GetSupportedRegions()[v.region]; !ok {
		return nil, fmt.Errorf("unsupported phone region %q", region)
	}

	err := RegisterValidators(v.validate, v.region)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Validator) Region() string {
	return v.region
}

// Validate returns a *ValidationError for the first invalid field, or nil
func (v *Validator) Validate(form Form) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return err
	}

	// errors are reported in struct field order, which is the validation order
	first := fieldErrs[0]
	return &ValidationError{Field: formFields[first.StructField()], Tag: first.Tag()}
}

// ValidPhone reports whether number is a valid phone number for the validator's region
func (v *Validator) ValidPhone(number string) bool {
	return isValidPhoneNumber(number, v.region)
}

// RegisterValidators adds the 'phone_number' & 'web_url' tags to validate
func RegisterValidators(validate *validator.Validate, region string) error {
	err := validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return isValidPhoneNumber(fl.Field().String(), region)
	})
	if err != nil {
		return err
	}

	return validate.RegisterValidation("web_url", func(fl validator.FieldLevel) bool {
		return isWebURL(validate, fl.Field().String())
	})
}

func isValidPhoneNumber(number, region string) bool {
	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		logg.Debugf("unable to parse phone number %q for region %v: %v", number, region, err)
		return false
	}

	return phonenumbers.IsValidNumber(parsed)
}

// isWebURL accepts web addresses with or without a scheme e.g. example.com,
// https://example.com/help?q=1 or 192.168.1.1:8080
func isWebURL(validate *validator.Validate, raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return false
	}

	candidate := raw
	if !leadingScheme.MatchString(candidate) {
		candidate = "http://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	if !webURLSchemes[strings.ToLower(parsed.Scheme)] {
		return false
	}

	host := parsed.Hostname()
	if host == "" {
		return false
	}

	if net.ParseIP(host) != nil {
		return true
	}

	return strings.Contains(host, ".") && validate.Var(host, "fqdn") == nil
}
