package profilesubmit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"
	"corp-onboarding/internal/onboarding/form"
)

const (
	checkEndpoint   = "/corporation-number"
	profileEndpoint = "/profile-details"
)

// Service runs the submission sequence: local schema, corporation check, profile
// creation. Each step only runs if the previous one passed.
type Service struct {
	client       ProfileClient
	notifier     Notifier
	recorder     Recorder
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewService(deps ServiceDependencies) (*Service, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("profile client is required")
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"component": "profile-submit"})

	return &Service{
		client:       deps.Client,
		notifier:     deps.Notifier,
		recorder:     deps.Recorder,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log),
	}, nil
}

// Submit runs one submission.
//
// A local schema failure is returned as an error and nothing is notified or sent.
// Every other run ends in an Outcome that is also pushed to the notifier exactly once.
func (s *Service) Submit(ctx context.Context, values models.ProfileFormValues) (*Outcome, error) {
	start := time.Now()

	if result := form.ValidateValues(values); !result.Valid {
		s.logger.Info("Submission blocked by form validation", map[string]interface{}{
			"errors": result.GetErrorMessages(),
		})
		s.record(ctx, "schema_rejected", start)
		return nil, errors.NewLocalSchemaError(result.ToFieldErrors())
	}

	outcome := s.execute(ctx, values.Canonical())

	s.record(ctx, string(outcome.Kind), start)
	if s.notifier != nil {
		s.notifier.Notify(outcome.Notification())
	}
	return outcome, nil
}

func (s *Service) execute(ctx context.Context, values models.ProfileFormValues) *Outcome {
	number := values.CorporationNumber

	check, err := s.client.ValidateCorporationNumber(ctx, number)
	if err == nil && check == nil {
		err = fmt.Errorf("empty corporation check result")
	}
	if err != nil {
		return s.networkError("corporation-check", err)
	}

	if !check.Valid {
		rejected := errors.NewRemoteValidationError(number, check.Message)
		if !registryAnswered(check.Status) {
			rejected = errors.NewUnexpectedStatusError(checkEndpoint, check.Status, rejected.Message)
		}
		s.logger.Info("Corporation number rejected", map[string]interface{}{
			"corporationNumber": number,
			"status":            check.Status,
			"errorCode":         string(rejected.Code),
			"message":           rejected.Message,
		})
		return &Outcome{Kind: OutcomeValidationRejected, Message: rejected.Message, Err: rejected}
	}

	result, err := s.client.SubmitProfile(ctx, values)
	if err == nil && result == nil {
		err = fmt.Errorf("empty profile submission result")
	}
	if err != nil {
		return s.networkError("profile-submit", err)
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = MsgUnknownError
		}
		failure := errors.NewProfileRejectedError(message)
		if result.Status != 0 && result.Status != http.StatusBadRequest {
			failure = errors.NewUnexpectedStatusError(profileEndpoint, result.Status, message)
		}
		s.logger.Info("Profile submission failed", map[string]interface{}{
			"corporationNumber": number,
			"status":            result.Status,
			"errorCode":         string(failure.Code),
			"message":           message,
		})
		return &Outcome{
			Kind:    OutcomeSubmissionFailed,
			Message: message,
			Err:     failure,
		}
	}

	s.logger.Info("Profile created", map[string]interface{}{
		"corporationNumber": number,
		"phone":             logger.MaskPhone(values.Phone),
	})
	return &Outcome{Kind: OutcomeSuccess, Message: MsgProfileCreated}
}

// registryAnswered reports statuses the registry uses for a deliberate answer.
// 0 means the client did not record a status.
func registryAnswered(status int) bool {
	switch {
	case status == 0, status >= 200 && status < 300:
		return true
	case status == http.StatusBadRequest, status == http.StatusNotFound:
		return true
	default:
		return false
	}
}

func (s *Service) networkError(operation string, err error) *Outcome {
	stdErr := s.errorHandler.Handle(operation, err)
	return &Outcome{
		Kind:    OutcomeNetworkError,
		Message: errors.UserMessage(stdErr),
		Err:     stdErr,
	}
}

func (s *Service) record(ctx context.Context, outcome string, start time.Time) {
	if s.recorder != nil {
		s.recorder.RecordSubmission(ctx, outcome, time.Since(start))
	}
}
