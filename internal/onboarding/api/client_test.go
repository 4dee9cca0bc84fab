package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Logger:  logger.NewTestLogger(t),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ==========================
// Corporation check
// ==========================

func TestValidateCorporationNumber(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     interface{}
		expected models.CorporationValidationResult
	}{
		{
			name:     "valid number",
			status:   http.StatusOK,
			body:     map[string]interface{}{"valid": true},
			expected: models.CorporationValidationResult{Valid: true, Status: http.StatusOK},
		},
		{
			name:     "invalid without message",
			status:   http.StatusOK,
			body:     map[string]interface{}{"valid": false},
			expected: models.CorporationValidationResult{Valid: false, Status: http.StatusOK},
		},
		{
			name:     "invalid with message",
			status:   http.StatusOK,
			body:     map[string]interface{}{"valid": false, "message": "Corporation not found"},
			expected: models.CorporationValidationResult{Valid: false, Message: "Corporation not found", Status: http.StatusOK},
		},
		{
			name:     "400 with message",
			status:   http.StatusBadRequest,
			body:     map[string]interface{}{"message": "Invalid corporation number"},
			expected: models.CorporationValidationResult{Valid: false, Message: "Invalid corporation number", Status: http.StatusBadRequest},
		},
		{
			name:     "404 with message treated like 400",
			status:   http.StatusNotFound,
			body:     map[string]interface{}{"message": "Not registered"},
			expected: models.CorporationValidationResult{Valid: false, Message: "Not registered", Status: http.StatusNotFound},
		},
		{
			name:     "500 without message",
			status:   http.StatusInternalServerError,
			body:     "oops",
			expected: models.CorporationValidationResult{Valid: false, Message: "Server error (500). Please try again later.", Status: http.StatusInternalServerError},
		},
		{
			name:     "unreadable 2xx body",
			status:   http.StatusOK,
			body:     nil,
			expected: models.CorporationValidationResult{Valid: false, Message: "Server error (200). Please try again later.", Status: http.StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotMethod string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotMethod = r.URL.Path, r.Method
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})

			result, err := client.ValidateCorporationNumber(context.Background(), "826417395")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *result)
			assert.Equal(t, "/corporation-number/826417395", gotPath)
			assert.Equal(t, http.MethodGet, gotMethod)
		})
	}
}

func TestValidateCorporationNumber_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(ClientOptions{BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	result, err := client.ValidateCorporationNumber(context.Background(), "826417395")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrCodeTransportNoResponse, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.MsgNoResponse, apperrors.UserMessage(err))
}

func TestValidateCorporationNumber_RequestSetupFailure(t *testing.T) {
	client := NewClient(ClientOptions{BaseURL: "://bad", Timeout: time.Second})

	_, err := client.ValidateCorporationNumber(context.Background(), "826417395")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTransportRequestSetup, apperrors.CodeOf(err))
}

func TestValidateCorporationNumber_ServerGone(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(ClientOptions{BaseURL: url, Timeout: time.Second})
	_, err := client.ValidateCorporationNumber(context.Background(), "826417395")
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

// ==========================
// Profile submission
// ==========================

func TestSubmitProfile_StripsCorporationSpacing(t *testing.T) {
	var received models.ProfileFormValues
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/profile-details", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	})

	result, err := client.SubmitProfile(context.Background(), models.ProfileFormValues{
		FirstName:         "John",
		LastName:          "Smith",
		Phone:             "+14165551234",
		CorporationNumber: "826 417 395",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.ProfileFormValues{
		FirstName:         "John",
		LastName:          "Smith",
		Phone:             "+14165551234",
		CorporationNumber: "826417395",
	}, received)
}

func TestSubmitProfile_StatusMapping(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            interface{}
		expectedSuccess bool
		expectedMessage string
	}{
		{"200 success", http.StatusOK, nil, true, ""},
		{"400 with message", http.StatusBadRequest, map[string]string{"message": "X"}, false, "X"},
		{"400 without message", http.StatusBadRequest, map[string]string{}, false, apperrors.MsgInvalidProfileInput},
		{"500", http.StatusInternalServerError, nil, false, "Request failed with status 500"},
		{"201 is not 200", http.StatusCreated, nil, false, "Request failed with status 201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})

			result, err := client.SubmitProfile(context.Background(), models.ProfileFormValues{CorporationNumber: "826417395"})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSuccess, result.Success)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestSubmitProfile_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SubmitProfile(ctx, models.ProfileFormValues{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTransportNoResponse, apperrors.CodeOf(err))
}
