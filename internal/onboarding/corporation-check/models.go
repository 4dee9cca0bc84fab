// internal/onboarding/corporation-check/models.go
package corporationcheck

import (
	"context"

	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"
)

// Status is the remote validation state of one corporation number field.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusPending       Status = "pending"
	StatusValid         Status = "resolved-valid"
	StatusInvalid       Status = "resolved-invalid"
	StatusRequestFailed Status = "request-failed"
)

const (
	MsgServiceUnavailable = "Service unavailable. Please try again later."
	MsgCheckFailed        = "Failed to validate corporation number"
)

// State is a snapshot of the validator. Number is the canonical value the state belongs to.
type State struct {
	Status  Status `json:"status"`
	Number  string `json:"number,omitempty"`
	Message string `json:"message,omitempty"`
}

// Valid reports a confirmed registry match. request-failed counts as not valid.
func (s State) Valid() bool {
	return s.Status == StatusValid
}

// HasResult reports whether a remote result exists for the current value.
// Pending counts: it already overrides the local schema error.
func (s State) HasResult() bool {
	return s.Status != StatusIdle && s.Status != ""
}

// Settled reports a finished check: valid, invalid or request-failed.
func (s State) Settled() bool {
	switch s.Status {
	case StatusValid, StatusInvalid, StatusRequestFailed:
		return true
	}
	return false
}

// Checker is the remote registry call.
type Checker interface {
	ValidateCorporationNumber(ctx context.Context, number string) (*models.CorporationValidationResult, error)
}

// Listener receives every state transition. It runs on the timer or request
// goroutine and must not call Update or Close.
type Listener func(State)

type ServiceDependencies struct {
	Checker   Checker
	Scheduler Scheduler
	Logger    logger.Logger
	Listener  Listener
}
