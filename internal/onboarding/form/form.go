// Package form holds the onboarding form state: per-field value, visited flag and
// schema error. Validation runs on blur and on submit, never on change.
package form

import (
	"fmt"
	"sync"

	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/common/validation"
	"corp-onboarding/internal/models"
	"corp-onboarding/internal/onboarding/format"
)

// FieldState is one field as the display layer sees it.
type FieldState struct {
	Value   string
	Touched bool
	Error   string
}

// VisibleError is the schema error once the field has been visited.
func (f FieldState) VisibleError() string {
	if f.Touched {
		return f.Error
	}
	return ""
}

// InitialValues are the values of an untouched form. The phone starts with its
// country prefix.
func InitialValues() models.ProfileFormValues {
	return models.ProfileFormValues{Phone: "+1"}
}

type Form struct {
	mu      sync.Mutex
	values  models.ProfileFormValues
	touched map[string]bool
	errors  map[string]string
}

func New() *Form {
	f := &Form{}
	f.reset()
	return f
}

// SetValue stores raw input for field. The corporation number is regrouped for
// display as it is typed.
func (f *Form) SetValue(field, raw string) error {
	if field == models.FieldCorporationNumber {
		raw = format.Corporation(raw)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.values.Set(field, raw) {
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Blur marks field visited and revalidates the form.
func (f *Form) Blur(field string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !isField(field) {
		return fmt.Errorf("unknown field %q", field)
	}
	f.touched[field] = true
	f.validateLocked()
	return nil
}

// SubmitAttempt visits every field and validates the whole form. It returns the
// values on success and a local schema error otherwise.
func (f *Form) SubmitAttempt() (models.ProfileFormValues, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, field := range models.FieldNames() {
		f.touched[field] = true
	}

	result := f.validateLocked()
	if !result.Valid {
		return f.values, apperrors.NewLocalSchemaError(result.ToFieldErrors())
	}
	return f.values, nil
}

// Reset returns the form to its initial values with nothing visited.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Form) Values() models.ProfileFormValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Field(field string) FieldState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FieldState{
		Value:   f.values.Get(field),
		Touched: f.touched[field],
		Error:   f.errors[field],
	}
}

// Errors returns the current schema errors by field, visited or not.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) validateLocked() *validation.ValidationResult {
	result := ValidateValues(f.values)
	f.errors = make(map[string]string, len(result.Errors))
	for _, e := range result.Errors {
		f.errors[e.Field] = e.Message
	}
	return result
}

func (f *Form) reset() {
	f.values = InitialValues()
	f.touched = map[string]bool{}
	f.errors = map[string]string{}
}

func isField(field string) bool {
	for _, name := range models.FieldNames() {
		if name == field {
			return true
		}
	}
	return false
}
