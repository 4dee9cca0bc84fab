// internal/onboarding/profile-submit/models.go
package profilesubmit

import (
	"context"
	"time"

	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"
)

// OutcomeKind is the terminal result of one submission run.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeValidationRejected OutcomeKind = "validation_rejected"
	OutcomeSubmissionFailed   OutcomeKind = "submission_failed"
	OutcomeNetworkError       OutcomeKind = "network_error"
)

const (
	TitleSuccess          = "Success"
	TitleSubmissionFailed = "Submission Failed"
	TitleError            = "Error"

	MsgProfileCreated = "Profile created successfully!"
	MsgUnknownError   = "Unknown error"
)

// Outcome is what the user is told after a run that passed the local schema.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
	// Err carries the classified failure, nil on success.
	Err error `json:"-"`
}

// Notification renders the outcome for the notification channel.
func (o *Outcome) Notification() models.Notification {
	switch o.Kind {
	case OutcomeSuccess:
		return models.Notification{Kind: models.NotificationSuccess, Title: TitleSuccess, Message: o.Message}
	case OutcomeSubmissionFailed:
		return models.Notification{Kind: models.NotificationError, Title: TitleSubmissionFailed, Message: o.Message}
	default:
		return models.Notification{Kind: models.NotificationError, Title: TitleError, Message: o.Message}
	}
}

// ProfileClient is the pair of backend calls a submission makes.
type ProfileClient interface {
	ValidateCorporationNumber(ctx context.Context, number string) (*models.CorporationValidationResult, error)
	SubmitProfile(ctx context.Context, values models.ProfileFormValues) (*models.SubmissionResult, error)
}

// Notifier is the single channel every terminal outcome is surfaced on.
type Notifier interface {
	Notify(n models.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(models.Notification)

func (f NotifierFunc) Notify(n models.Notification) {
	f(n)
}

// Recorder receives one sample per run.
type Recorder interface {
	RecordSubmission(ctx context.Context, outcome string, duration time.Duration)
}

type ServiceDependencies struct {
	Client   ProfileClient
	Notifier Notifier
	Recorder Recorder
	Logger   logger.Logger
}
