package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/logger"
)

// maxResponseBodySize bounds how much of a response body is kept
const maxResponseBodySize = 4 * 1024

// HTTPResponse is the final response of a request
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response has a 2xx status code
func (r *HTTPResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Post sends body to url with the given headers. Throttled (429) and server error (5xx)
	// responses are retried with exponential backoff. The last response received is returned
	// even when retries are exhausted, so callers can record its status.
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPResponse, error)
}

// RetryPolicy configures the exponential backoff of an HTTP client
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
	retry  RetryPolicy
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration, retry RetryPolicy) HTTPClient {
	if retry.InitialInterval <= 0 {
		retry.InitialInterval = 2 * time.Second
	}
	if retry.MaxInterval <= 0 {
		retry.MaxInterval = 30 * time.Second
	}
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		retry: retry,
	}
}

// Post sends body to url with exponential backoff retry for throttled and failed responses
func (c *RealHTTPClient) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPResponse, error) {
	var last *HTTPResponse

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}
		last = &HTTPResponse{StatusCode: resp.StatusCode, Body: respBody}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			logger.Warn("retryable response, retrying with backoff",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode))
			return fmt.Errorf("retryable status code %d", resp.StatusCode)
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.MaxElapsedTime = 0 // bounded by MaxRetries instead
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, c.retry.MaxRetries), ctx)); err != nil {
		return last, fmt.Errorf("request failed after retries: %w", err)
	}

	return last, nil
}
