package profilesubmit

import (
	"context"
	"testing"
	"time"

	"corp-onboarding/internal/common/config"
	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"
	"corp-onboarding/internal/onboarding/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createValidConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func fillForm(t *testing.T, f *form.Form, values models.ProfileFormValues) {
	t.Helper()
	for _, field := range models.FieldNames() {
		require.NoError(t, f.SetValue(field, values.Get(field)))
	}
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
				Client:       &MockClient{},
				Logger:       logger.NewStructured("info", "json"),
			},
		},
		{
			name: "timeout derived from app config",
			opts: HandlerOptions{
				AppConfig: &config.Config{API: config.APIConfig{Timeout: 12000}},
				Client:    &MockClient{},
			},
		},
		{
			name: "invalid timeout",
			opts: HandlerOptions{
				CustomConfig: &Config{Timeout: -time.Second},
				Client:       &MockClient{},
			},
			wantErr: true,
			errMsg:  "timeout must be positive",
		},
		{
			name: "missing client",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
			},
			wantErr: true,
			errMsg:  "profile client is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, handler)
				return
			}
			assert.NoError(t, err)
			require.NotNil(t, handler)
			assert.NotNil(t, handler.Form())
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	cfg := createConfigFromAppConfig(&config.Config{API: config.APIConfig{Timeout: 12000}}, nil)
	assert.Equal(t, 25*time.Second, cfg.Timeout)

	custom := createValidConfig()
	assert.Same(t, custom, createConfigFromAppConfig(nil, custom))

	assert.Equal(t, DefaultConfig(), createConfigFromAppConfig(nil, nil))
}

// ==========================
// Submit Tests
// ==========================

func TestHandler_Submit_SchemaFailureKeepsFieldErrors(t *testing.T) {
	client := &MockClient{}
	notifier := &MockNotifier{}
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Client:       client,
		Notifier:     notifier,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)

	outcome, err := handler.Submit(context.Background())
	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.True(t, apperrors.IsLocalSchema(err))

	assert.Equal(t, form.MsgRequired, handler.Form().Field(models.FieldFirstName).VisibleError())
	client.AssertNotCalled(t, "ValidateCorporationNumber", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything)
	assert.False(t, handler.Submitting())
}

func TestHandler_Submit_SuccessResetsForm(t *testing.T) {
	client := &MockClient{}
	notifier := &MockNotifier{}
	f := form.New()
	fillForm(t, f, createValidValues())

	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Form:         f,
		Client:       client,
		Notifier:     notifier,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)

	client.On("ValidateCorporationNumber", mock.Anything, "826417395").
		Return(&models.CorporationValidationResult{Valid: true}, nil).Once()
	client.On("SubmitProfile", mock.Anything, canonicalValues()).
		Return(&models.SubmissionResult{Success: true}, nil).Once()
	notifier.On("Notify", mock.MatchedBy(func(n models.Notification) bool {
		return n.Kind == models.NotificationSuccess
	})).Once()

	outcome, err := handler.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Equal(t, form.InitialValues(), f.Values())

	client.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestHandler_Submit_FailureKeepsValues(t *testing.T) {
	client := &MockClient{}
	f := form.New()
	fillForm(t, f, createValidValues())

	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Form:         f,
		Client:       client,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)

	client.On("ValidateCorporationNumber", mock.Anything, "826417395").
		Return(&models.CorporationValidationResult{Valid: true}, nil).Once()
	client.On("SubmitProfile", mock.Anything, canonicalValues()).
		Return(&models.SubmissionResult{Success: false, Message: "X"}, nil).Once()

	outcome, err := handler.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSubmissionFailed, outcome.Kind)
	assert.Equal(t, "X", outcome.Message)
	assert.Equal(t, createValidValues(), f.Values())
}

func TestHandler_Submit_RejectsReentry(t *testing.T) {
	client := &MockClient{}
	f := form.New()
	fillForm(t, f, createValidValues())

	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Form:         f,
		Client:       client,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	client.On("ValidateCorporationNumber", mock.Anything, "826417395").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&models.CorporationValidationResult{Valid: false}, nil).Once()

	type result struct {
		outcome *Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := handler.Submit(context.Background())
		done <- result{outcome, err}
	}()

	<-entered
	assert.True(t, handler.Submitting())

	outcome, err := handler.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Nil(t, outcome)

	close(release)
	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, OutcomeValidationRejected, first.outcome.Kind)
	assert.False(t, handler.Submitting())

	client.AssertNumberOfCalls(t, "ValidateCorporationNumber", 1)
}
