// Package rest talks to the rental backend over JSON/HTTP: the bike
// catalog, the partner directory and the booking endpoint.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bikerental/internal/pkg/errs"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
)

// ClientConfig configures the backend client. RateLimit is requests per
// second; zero disables throttling.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// Client is the shared transport for the backend adapters. Every outbound
// request waits on one token bucket.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger.With("component", "rest_client"),
	}, nil
}

// call performs one request. A non-2xx answer becomes an
// *errs.ExternalServiceError carrying the backend's message. On success
// the payload, unwrapped from a {"data": ...} envelope if present, is
// decoded into out.
func (c *Client) call(
	ctx context.Context,
	service string,
	method string,
	path string,
	bearer string,
	body any,
	out any,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errs.NewExternalServiceErrorWithCause(service, "request was cancelled", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Backend request failed", "service", service, "path", path, "error", err)
		return errs.NewExternalServiceErrorWithCause(service, "service is unavailable", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errs.NewExternalServiceErrorWithCause(service, "response could not be read", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.InfoContext(ctx, "Backend rejected request",
			"service", service, "path", path, "status", resp.StatusCode)
		return errs.NewExternalServiceError(service, resp.StatusCode, ErrorMessage(payload, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(unwrapData(payload), out); err != nil {
		return errs.NewExternalServiceErrorWithCause(service, "response is malformed", fmt.Errorf("decode: %w", err))
	}
	return nil
}

// messagePaths are tried in order; the first string found wins.
var messagePaths = []string{
	"response.data.message",
	"data.message",
	"message",
	"error.message",
	"error",
}

// ErrorMessage extracts the human-readable message from an error body,
// falling back to the HTTP status text.
func ErrorMessage(body []byte, statusCode int) string {
	if gjson.ValidBytes(body) {
		for _, path := range messagePaths {
			if r := gjson.GetBytes(body, path); r.Type == gjson.String && strings.TrimSpace(r.Str) != "" {
				return r.Str
			}
		}
	}

	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}

func unwrapData(body []byte) []byte {
	if r := gjson.GetBytes(body, "data"); r.IsArray() || r.IsObject() {
		return []byte(r.Raw)
	}
	return body
}
