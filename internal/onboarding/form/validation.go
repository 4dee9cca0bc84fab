package form

import (
	"corp-onboarding/internal/common/validation"
	"corp-onboarding/internal/models"
)

const (
	NameMaxLength = 50

	MsgRequired          = "This field is required"
	MsgNameMax           = "Maximum 50 characters"
	MsgPhoneInvalid      = "Please enter a valid Canadian phone number (e.g. +14165551234)"
	MsgCorporationLength = "Must be exactly 9 digits"
)

// PhonePattern is "+1", an area code starting 2-9, then nine more digits.
const PhonePattern = `^\+1[2-9]\d{9}$`

// corporationPattern accepts nine digits with any display spacing around them.
const corporationPattern = `^\s*([0-9]\s*){9}$`

func GetProfileSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			models.FieldFirstName: {
				Type:        "string",
				Description: "Given name",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(NameMaxLength),
				Messages: map[string]string{
					validation.RuleRequired:  MsgRequired,
					validation.RuleType:      MsgRequired,
					validation.RuleMaxLength: MsgNameMax,
				},
			},
			models.FieldLastName: {
				Type:        "string",
				Description: "Family name",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(NameMaxLength),
				Messages: map[string]string{
					validation.RuleRequired:  MsgRequired,
					validation.RuleType:      MsgRequired,
					validation.RuleMaxLength: MsgNameMax,
				},
			},
			models.FieldPhone: {
				Type:        "string",
				Description: "Canadian phone number in +1XXXXXXXXXX form",
				MinLength:   validation.IntPtr(1),
				Pattern:     validation.StringPtr(PhonePattern),
				Messages: map[string]string{
					validation.RuleRequired: MsgRequired,
					validation.RuleType:     MsgRequired,
					validation.RulePattern:  MsgPhoneInvalid,
				},
			},
			models.FieldCorporationNumber: {
				Type:        "string",
				Description: "Nine digit corporation number, display spacing allowed",
				MinLength:   validation.IntPtr(1),
				Pattern:     validation.StringPtr(corporationPattern),
				Messages: map[string]string{
					validation.RuleRequired: MsgRequired,
					validation.RuleType:     MsgRequired,
					validation.RulePattern:  MsgCorporationLength,
				},
			},
		},
		Required:             models.FieldNames(),
		AdditionalProperties: false,
	}
}

var profileSchema = validation.MustCompile(GetProfileSchema(), models.FieldNames()...)

// ValidateValues runs the local schema over all four fields.
func ValidateValues(values models.ProfileFormValues) *validation.ValidationResult {
	return profileSchema.Validate(values.AsMap())
}

// ValidateField returns the schema message for one field, or "" when it passes.
func ValidateField(values models.ProfileFormValues, field string) string {
	if e := profileSchema.ValidateField(field, values.AsMap()); e != nil {
		return e.Message
	}
	return ""
}
