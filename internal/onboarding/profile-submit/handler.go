package profilesubmit

import (
	"context"
	"fmt"
	"sync/atomic"

	"corp-onboarding/internal/common/config"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/onboarding/form"
)

// ErrSubmissionInProgress is returned when Submit is called while a run is in flight.
var ErrSubmissionInProgress = fmt.Errorf("submission already in progress")

// Handler binds the orchestrator to a form: it gates submission on the form's
// schema, refuses re-entry while a run is in flight and resets the form on success.
type Handler struct {
	config     *Config
	logger     logger.Logger
	form       *form.Form
	service    *Service
	submitting atomic.Bool
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Form         *form.Form
	Client       ProfileClient
	Notifier     Notifier
	Recorder     Recorder
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	handlerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := handlerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for profile-submit: %w", err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	service, err := NewService(ServiceDependencies{
		Client:   opts.Client,
		Notifier: opts.Notifier,
		Recorder: opts.Recorder,
		Logger:   loggerInstance,
	})
	if err != nil {
		return nil, err
	}

	f := opts.Form
	if f == nil {
		f = form.New()
	}

	return &Handler{
		config:  handlerConfig,
		logger:  loggerInstance,
		form:    f,
		service: service,
	}, nil
}

// Form is the form this handler submits.
func (h *Handler) Form() *form.Form {
	return h.form
}

// Submit validates the form and, if it passes, runs the orchestrator.
// Schema failures are returned as errors and leave the field errors on the form.
func (h *Handler) Submit(ctx context.Context) (*Outcome, error) {
	if !h.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInProgress
	}
	defer h.submitting.Store(false)

	values, err := h.form.SubmitAttempt()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	outcome, err := h.service.Submit(ctx, values)
	if err != nil {
		return nil, err
	}

	if outcome.Kind == OutcomeSuccess {
		h.form.Reset()
	}
	return outcome, nil
}

// Submitting reports whether a run is in flight.
func (h *Handler) Submitting() bool {
	return h.submitting.Load()
}
