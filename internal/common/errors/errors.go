// Package errors provides standardized error handling for the onboarding pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Synchronous, field-level errors produced by the static form rules.
	ErrCodeLocalSchemaInvalid ErrorCode = "LOCAL_SCHEMA_INVALID"

	// The corporation registry answered and rejected the number.
	ErrCodeCorporationRejected ErrorCode = "CORPORATION_REJECTED"

	// The profile endpoint answered 400.
	ErrCodeProfileRejected ErrorCode = "PROFILE_REJECTED"

	// Transport level failures, no structured response available.
	ErrCodeTransportNoResponse   ErrorCode = "TRANSPORT_NO_RESPONSE"
	ErrCodeTransportRequestSetup ErrorCode = "TRANSPORT_REQUEST_SETUP"
	ErrCodeTransportFailed       ErrorCode = "TRANSPORT_FAILED"

	// Any status the client has no mapping for.
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeStoreFailed   ErrorCode = "STORE_FAILED"
)

// User-facing fallback messages.
const (
	MsgNoResponse          = "No response from server. Please check your internet connection."
	MsgServiceUnavailable  = "Service unavailable. Please check your connection."
	MsgUnexpected          = "Unexpected error"
	MsgSubmitFallback      = "Failed to submit profile. Please try again."
	MsgInvalidCorporation  = "Invalid corporation number"
	MsgInvalidProfileInput = "Invalid or missing fields. Please check your input."
)

// FieldError describes a single failed form rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

// StandardError represents a structured application error.
type StandardError struct {
	Code        ErrorCode    `json:"code"`
	Message     string       `json:"message"`
	Details     string       `json:"details,omitempty"`
	Retryable   bool         `json:"retryable"`
	Status      int          `json:"status,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Err         error        `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Err
}

// ==========================
// 2. Error Constructors
// ==========================

// NewLocalSchemaError wraps the field errors produced by the form schema.
func NewLocalSchemaError(fieldErrors []FieldError) *StandardError {
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field)
	}
	return &StandardError{
		Code:        ErrCodeLocalSchemaInvalid,
		Message:     "Form validation failed",
		Details:     "fields: " + strings.Join(fields, ","),
		Retryable:   false,
		FieldErrors: fieldErrors,
		Timestamp:   time.Now().UTC(),
	}
}

// NewRemoteValidationError reports a corporation number rejected by the registry.
// An empty reason falls back to the generic invalid-number message.
func NewRemoteValidationError(number, reason string) *StandardError {
	if reason == "" {
		reason = MsgInvalidCorporation
	}
	return &StandardError{
		Code:      ErrCodeCorporationRejected,
		Message:   reason,
		Details:   fmt.Sprintf("corporationNumber: %s", number),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileRejectedError reports a 400 from the profile endpoint.
func NewProfileRejectedError(reason string) *StandardError {
	if reason == "" {
		reason = MsgInvalidProfileInput
	}
	return &StandardError{
		Code:      ErrCodeProfileRejected,
		Message:   reason,
		Status:    400,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoResponseError reports a request that was sent but never answered (timeouts included).
func NewNoResponseError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportNoResponse,
		Message:   MsgNoResponse,
		Details:   fmt.Sprintf("endpoint: %s, error: %v", endpoint, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewRequestSetupError reports a request that could not be built.
func NewRequestSetupError(endpoint string, err error) *StandardError {
	msg := MsgUnexpected
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeTransportRequestSetup,
		Message:   msg,
		Details:   fmt.Sprintf("endpoint: %s", endpoint),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewTransportError is the generic transport failure used when the cause cannot be classified.
func NewTransportError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailed,
		Message:   MsgServiceUnavailable,
		Details:   fmt.Sprintf("endpoint: %s, error: %v", endpoint, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewUnexpectedStatusError reports a status the caller has no mapping for.
func NewUnexpectedStatusError(endpoint string, status int, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpectedStatus,
		Message:   message,
		Details:   fmt.Sprintf("endpoint: %s", endpoint),
		Status:    status,
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewStoreFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFailed,
		Message:   "Profile store operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf returns the code of the first StandardError in the chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsTransport reports whether err is a transport level failure.
func IsTransport(err error) bool {
	return GetErrorCategory(CodeOf(err)) == "transport"
}

// IsLocalSchema reports whether err came from the static form rules.
func IsLocalSchema(err error) bool {
	return CodeOf(err) == ErrCodeLocalSchemaInvalid
}

// FieldErrorsOf returns the field errors carried by a local schema error.
func FieldErrorsOf(err error) []FieldError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.FieldErrors
	}
	return nil
}

// UserMessage converts any error into the single message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) && stdErr.Message != "" {
		return stdErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgSubmitFallback
}

// IsRetryableErrorCode checks if an error code describes a condition the user may retry manually.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeTransportNoResponse, ErrCodeTransportFailed, ErrCodeStoreFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeLocalSchemaInvalid:
		return "validation"
	case ErrCodeCorporationRejected, ErrCodeProfileRejected, ErrCodeUnexpectedStatus:
		return "remote"
	case ErrCodeTransportNoResponse, ErrCodeTransportRequestSetup, ErrCodeTransportFailed:
		return "transport"
	case ErrCodeConfigInvalid, ErrCodeStoreFailed:
		return "infrastructure"
	default:
		return "unknown"
	}
}
