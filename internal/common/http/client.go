// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/common/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 1 << 20

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// Message extracts a non-empty "message" string from a JSON body, if present.
func (r *Response) Message() string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

// Client is a base-URL bound HTTP client with a fixed request timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tracer     trace.Tracer
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP lets tests and callers supply their own transport.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tracer:     otel.Tracer("corp-onboarding/http"),
	}
}

// BaseURL returns the URL every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request and reads the whole response.
// Failures are returned as *errors.StandardError with a transport code: request
// setup, no response (timeouts and cancellations included), or a generic failure.
// Non-2xx statuses are not errors; callers map them.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+routeOf(path), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	endpoint := routeOf(path)

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request setup failed")
		metrics.APIRequestDuration.WithLabelValues(endpoint, "setup_error").Observe(time.Since(start).Seconds())
		return nil, apperrors.NewRequestSetupError(path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no response")
		metrics.APIRequestDuration.WithLabelValues(endpoint, "no_response").Observe(time.Since(start).Seconds())
		return nil, apperrors.NewNoResponseError(path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body failed")
		metrics.APIRequestDuration.WithLabelValues(endpoint, "read_error").Observe(time.Since(start).Seconds())
		return nil, apperrors.NewTransportError(path, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	metrics.APIRequestDuration.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// Get is Do with GET and no body.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// PostJSON is Do with POST and a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// routeOf drops path parameters so metric labels stay bounded.
func routeOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		return "/" + trimmed[:i] + "/:param"
	}
	return "/" + trimmed
}
