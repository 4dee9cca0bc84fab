package corporationcheck

// Indicator is what the field shows next to its input.
type Indicator string

const (
	IndicatorNone    Indicator = "none"
	IndicatorSpinner Indicator = "spinner"
	IndicatorValid   Indicator = "valid"
	IndicatorError   Indicator = "error"
)

// LocalFieldState is the form container's view of the field.
type LocalFieldState struct {
	Error   string
	Touched bool
}

// DisplayState is the reconciled field decoration.
type DisplayState struct {
	Indicator Indicator `json:"indicator"`
	Message   string    `json:"message,omitempty"`
}

// ResolveDisplayState merges the local schema error with the remote check.
// Any remote result for the current value, pending included, hides the local error.
// The local error shows only once the field was visited.
func ResolveDisplayState(local LocalFieldState, remote State) DisplayState {
	switch remote.Status {
	case StatusPending:
		return DisplayState{Indicator: IndicatorSpinner}
	case StatusValid:
		return DisplayState{Indicator: IndicatorValid}
	case StatusInvalid, StatusRequestFailed:
		return DisplayState{Indicator: IndicatorError, Message: remote.Message}
	}

	if local.Touched && local.Error != "" {
		return DisplayState{Indicator: IndicatorError, Message: local.Error}
	}
	return DisplayState{Indicator: IndicatorNone}
}
