package validation

import (
	"fmt"
	"sort"

	apperrors "corp-onboarding/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// Rule names reported in ValidationError.Code.
const (
	RuleRequired  = "required"
	RuleMaxLength = "max_length"
	RulePattern   = "pattern"
	RuleType      = "type"
)

// rulePriority decides which error a field shows when several rules fail at once.
var rulePriority = map[string]int{
	RuleRequired:  0,
	RuleType:      1,
	RuleMaxLength: 2,
	RulePattern:   3,
}

// JSONSchema defines the structure of a form document
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Pattern     *string `json:"pattern,omitempty"`
	MinLength   *int    `json:"minLength,omitempty"`
	MaxLength   *int    `json:"maxLength,omitempty"`

	// Messages maps a rule name to the text shown under the field.
	Messages map[string]string `json:"-"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSONSchema with its per-field messages.
type Schema struct {
	compiled *gojsonschema.Schema
	def      JSONSchema
	order    []string
}

// Compile loads def into gojsonschema. order fixes the order of reported fields;
// fields not listed come after it alphabetically.
func Compile(def JSONSchema, order ...string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{compiled: compiled, def: def, order: order}, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(def JSONSchema, order ...string) *Schema {
	s, err := Compile(def, order...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks doc and reports at most one error per field.
func (s *Schema) Validate(doc map[string]interface{}) *ValidationResult {
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    RuleType,
			}},
		}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	best := map[string]ValidationError{}
	for _, desc := range result.Errors() {
		field, rule := classify(desc)
		candidate := ValidationError{
			Field:   field,
			Code:    rule,
			Message: s.message(field, rule, desc.Description()),
		}
		if current, ok := best[field]; !ok || rulePriority[rule] < rulePriority[current.Code] {
			best[field] = candidate
		}
	}

	errs := make([]ValidationError, 0, len(best))
	for _, field := range s.fieldOrder(best) {
		errs = append(errs, best[field])
	}
	return &ValidationResult{Valid: false, Errors: errs}
}

// ValidateField runs the whole schema and keeps the error of one field, if any.
func (s *Schema) ValidateField(field string, doc map[string]interface{}) *ValidationError {
	for _, e := range s.Validate(doc).Errors {
		if e.Field == field {
			e := e
			return &e
		}
	}
	return nil
}

func classify(desc gojsonschema.ResultError) (field, rule string) {
	field = desc.Field()
	switch desc.Type() {
	case "required":
		if prop, ok := desc.Details()["property"].(string); ok {
			field = prop
		}
		return field, RuleRequired
	case "string_gte":
		// minLength 1 is how presence of a string is expressed
		return field, RuleRequired
	case "string_lte":
		return field, RuleMaxLength
	case "pattern":
		return field, RulePattern
	case "invalid_type":
		return field, RuleType
	default:
		return field, desc.Type()
	}
}

func (s *Schema) message(field, rule, fallback string) string {
	if prop, ok := s.def.Properties[field]; ok {
		if msg, ok := prop.Messages[rule]; ok {
			return msg
		}
	}
	return fallback
}

func (s *Schema) fieldOrder(found map[string]ValidationError) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(found))
	for _, f := range s.order {
		if _, ok := found[f]; ok {
			out = append(out, f)
			seen[f] = true
		}
	}
	var rest []string
	for f := range found {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// ToFieldErrors converts the result into the error taxonomy's field errors.
func (vr *ValidationResult) ToFieldErrors() []apperrors.FieldError {
	out := make([]apperrors.FieldError, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		out = append(out, apperrors.FieldError{Field: e.Field, Message: e.Message, Rule: e.Code})
	}
	return out
}

// IntPtr and StringPtr help declare Property constraints.
func IntPtr(i int) *int {
	return &i
}

func StringPtr(s string) *string {
	return &s
}
