// internal/models/profile.go
package models

import "strings"

// Form field names, shared by the schema, the form container and the CLI.
const (
	FieldFirstName         = "firstName"
	FieldLastName          = "lastName"
	FieldPhone             = "phone"
	FieldCorporationNumber = "corporationNumber"
)

// ProfileFormValues is what the onboarding form collects.
// CorporationNumber holds the digit-grouped display string ("123 456 789").
type ProfileFormValues struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Phone             string `json:"phone"`
	CorporationNumber string `json:"corporationNumber"`
}

// Canonical returns a copy with the corporation number stripped of display spacing.
func (v ProfileFormValues) Canonical() ProfileFormValues {
	v.CorporationNumber = StripSpaces(v.CorporationNumber)
	return v
}

// Get returns the value of the named field.
func (v ProfileFormValues) Get(field string) string {
	switch field {
	case FieldFirstName:
		return v.FirstName
	case FieldLastName:
		return v.LastName
	case FieldPhone:
		return v.Phone
	case FieldCorporationNumber:
		return v.CorporationNumber
	}
	return ""
}

// Set assigns the named field and reports whether the field exists.
func (v *ProfileFormValues) Set(field, value string) bool {
	switch field {
	case FieldFirstName:
		v.FirstName = value
	case FieldLastName:
		v.LastName = value
	case FieldPhone:
		v.Phone = value
	case FieldCorporationNumber:
		v.CorporationNumber = value
	default:
		return false
	}
	return true
}

// AsMap is the document handed to the form schema.
func (v ProfileFormValues) AsMap() map[string]interface{} {
	return map[string]interface{}{
		FieldFirstName:         v.FirstName,
		FieldLastName:          v.LastName,
		FieldPhone:             v.Phone,
		FieldCorporationNumber: v.CorporationNumber,
	}
}

// CorporationValidationResult is the registry's answer for one corporation number.
type CorporationValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	// Status is the HTTP status the answer came with, 0 when unknown.
	Status int `json:"-"`
}

// SubmissionResult is the profile endpoint's answer.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"-"`
}

// StripSpaces removes every whitespace character.
func StripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// FieldNames lists the form fields in display order.
func FieldNames() []string {
	return []string{FieldFirstName, FieldLastName, FieldPhone, FieldCorporationNumber}
}
