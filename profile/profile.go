// Package profile holds the emergency profile: the phone number to call plus
// the optional email, url & location the action screen builds requests from.
package profile

import (
	"fmt"

	"github.com/Daskott/sosphone/utils"
)

type Field int

const (
	Phone Field = iota
	Email
	URL
	Location
)

// Fields lists every profile field in validation order
var Fields = []Field{Phone, Email, URL, Location}

var fieldKeys = map[Field]string{
	Phone:    "phone",
	Email:    "email",
	URL:      "url",
	Location: "location",
}

// Key is the preference store key the field is persisted under
func (f Field) Key() string {
	return fieldKeys[f]
}

func (f Field) String() string {
	if key, ok := fieldKeys[f]; ok {
		return key
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Keys returns the preference store keys of all profile fields
func Keys() []string {
	keys := make([]string, 0, len(Fields))
	for _, f := range Fields {
		keys = append(keys, f.Key())
	}
	return keys
}

// Profile is the emergency profile as persisted & passed between screens.
// A nil field is absent, which is not the same as an empty string.
type Profile struct {
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	URL      *string `json:"url,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (p Profile) Get(f Field) *string {
	switch f {
	case Phone:
		return p.Phone
	case Email:
		return p.Email
	case URL:
		return p.URL
	case Location:
		return p.Location
	}
	return nil
}

func (p *Profile) Set(f Field, value *string) {
	switch f {
	case Phone:
		p.Phone = value
	case Email:
		p.Email = value
	case URL:
		p.URL = value
	case Location:
		p.Location = value
	}
}

// Values maps each field's store key to its value, nil for absent fields
func (p Profile) Values() map[string]*string {
	values := make(map[string]*string, len(Fields))
	for _, f := range Fields {
		values[f.Key()] = p.Get(f)
	}
	return values
}

// Form returns the profile as editable text, absent fields become ""
func (p Profile) Form() Form {
	return Form{
		Phone:    utils.StrVal(p.Phone),
		Email:    utils.StrVal(p.Email),
		URL:      utils.StrVal(p.URL),
		Location: utils.StrVal(p.Location),
	}
}

// Form is the text currently held by the configuration screen's inputs
type Form struct {
	Phone    string `validate:"required,phone_number"`
	Email    string `validate:"omitempty,email"`
	URL      string `validate:"omitempty,web_url"`
	Location string
}

func (form Form) Get(f Field) string {
	switch f {
	case Phone:
		return form.Phone
	case Email:
		return form.Email
	case URL:
		return form.URL
	case Location:
		return form.Location
	}
	return ""
}

func (form *Form) Set(f Field, value string) {
	switch f {
	case Phone:
		form.Phone = value
	case Email:
		form.Email = value
	case URL:
		form.URL = value
	case Location:
		form.Location = value
	}
}

// Profile converts the form to a profile, empty inputs become absent fields
func (form Form) Profile() Profile {
	return Profile{
		Phone:    utils.StrPtr(form.Phone),
		Email:    utils.StrPtr(form.Email),
		URL:      utils.StrPtr(form.URL),
		Location: utils.StrPtr(form.Location),
	}
}
