// Package api talks to the onboarding backend: the corporation registry check and
// profile creation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "corp-onboarding/internal/common/errors"
	httpclient "corp-onboarding/internal/common/http"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"
)

const (
	corporationPath = "/corporation-number/"
	profilePath     = "/profile-details"
)

// Client implements both backend calls over one configured HTTP client.
type Client struct {
	http   *httpclient.Client
	logger logger.Logger
}

type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
	// HTTP overrides the underlying client; Timeout is ignored when set.
	HTTP *http.Client
}

func NewClient(opts ClientOptions) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	var hc *httpclient.Client
	if opts.HTTP != nil {
		hc = httpclient.NewClientWithHTTP(opts.BaseURL, opts.HTTP)
	} else {
		hc = httpclient.NewClient(opts.BaseURL, opts.Timeout)
	}

	return &Client{
		http:   hc,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// ValidateCorporationNumber asks the registry about a canonical nine digit number.
//
// A 2xx answer is returned as decoded. Any non-2xx answer becomes {valid:false} with the
// server message, or "Server error (N). Please try again later." when there is none.
// Only transport failures are returned as errors.
func (c *Client) ValidateCorporationNumber(ctx context.Context, number string) (*models.CorporationValidationResult, error) {
	resp, err := c.http.Get(ctx, corporationPath+url.PathEscape(number))
	if err != nil {
		c.logger.Warn("Corporation check transport failure", map[string]interface{}{
			"corporationNumber": number,
			"errorCode":         string(apperrors.CodeOf(err)),
			"error":             err.Error(),
		})
		return nil, err
	}

	if resp.OK() {
		var result models.CorporationValidationResult
		if err := resp.DecodeJSON(&result); err != nil {
			c.logger.Warn("Corporation check returned an unreadable body", map[string]interface{}{
				"corporationNumber": number,
				"status":            resp.StatusCode,
				"error":             err.Error(),
			})
			return &models.CorporationValidationResult{
				Valid:   false,
				Message: serverErrorMessage(resp.StatusCode),
				Status:  resp.StatusCode,
			}, nil
		}
		c.logger.Debug("Corporation check answered", map[string]interface{}{
			"corporationNumber": number,
			"valid":             result.Valid,
		})
		result.Status = resp.StatusCode
		return &result, nil
	}

	message := resp.Message()
	if message == "" {
		message = serverErrorMessage(resp.StatusCode)
	}

	c.logger.Info("Corporation check rejected", map[string]interface{}{
		"corporationNumber": number,
		"status":            resp.StatusCode,
		"message":           message,
	})
	return &models.CorporationValidationResult{Valid: false, Message: message, Status: resp.StatusCode}, nil
}

// SubmitProfile posts the profile with the corporation number stripped of spacing.
//
// 200 is success. 400 yields the server message or the invalid-fields fallback; any
// other status yields "Request failed with status N" (2xx other than 200 included).
// Only transport failures are returned as errors.
func (c *Client) SubmitProfile(ctx context.Context, values models.ProfileFormValues) (*models.SubmissionResult, error) {
	payload := values.Canonical()

	resp, err := c.http.PostJSON(ctx, profilePath, payload)
	if err != nil {
		c.logger.Warn("Profile submission transport failure", map[string]interface{}{
			"errorCode": string(apperrors.CodeOf(err)),
			"error":     err.Error(),
		})
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		c.logger.Info("Profile submitted", map[string]interface{}{
			"corporationNumber": payload.CorporationNumber,
			"phone":             logger.MaskPhone(payload.Phone),
		})
		return &models.SubmissionResult{Success: true, Status: resp.StatusCode}, nil

	case resp.StatusCode == http.StatusBadRequest:
		message := resp.Message()
		if message == "" {
			message = apperrors.MsgInvalidProfileInput
		}
		c.logger.Info("Profile rejected", map[string]interface{}{
			"status":  resp.StatusCode,
			"message": message,
		})
		return &models.SubmissionResult{Success: false, Message: message, Status: resp.StatusCode}, nil

	default:
		c.logger.Warn("Profile submission unexpected status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return &models.SubmissionResult{
			Success: false,
			Message: fmt.Sprintf("Request failed with status %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}, nil
	}
}

func serverErrorMessage(status int) string {
	return fmt.Sprintf("Server error (%d). Please try again later.", status)
}
