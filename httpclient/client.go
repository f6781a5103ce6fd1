// Package httpclient holds the retrying JSON transport shared by the prover and settlement clients.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest is returned when the server rejects the request as malformed.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized is returned when the server rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the server refuses the request in its current state.
	ErrConflict = errors.New("conflict")
)

// Config of the retry policy.
type Config struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// A wrapper around zap.Logger to make it compatible with
// retryablehttp.LeveledLogger interface.
type retryableHttpLogger struct {
	inner *zap.Logger
}

func (r retryableHttpLogger) Error(format string, args ...any) {
	r.inner.Sugar().Errorw(format, args...)
}

func (r retryableHttpLogger) Info(format string, args ...any) {
	r.inner.Sugar().Infow(format, args...)
}

func (r retryableHttpLogger) Warn(format string, args ...any) {
	r.inner.Sugar().Warnw(format, args...)
}

func (r retryableHttpLogger) Debug(format string, args ...any) {
	r.inner.Sugar().Debugw(format, args...)
}

// New creates a retrying client. MaxRetries of zero disables retries.
func New(cfg Config, logger *zap.Logger) *retryablehttp.Client {
	client := &retryablehttp.Client{
		HTTPClient:   &http.Client{Timeout: cfg.Timeout},
		Logger:       &retryableHttpLogger{inner: logger},
		RetryMax:     cfg.MaxRetries,
		RetryWaitMin: cfg.RetryDelay,
		RetryWaitMax: 2 * cfg.RetryDelay,
		Backoff:      retryablehttp.LinearJitterBackoff,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	client.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		logger.Debug("response received",
			zap.Stringer("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode),
		)
	}
	return client
}

// ParseBaseURL parses an endpoint, defaulting to http when no scheme is given.
func ParseBaseURL(endpoint string) (*url.URL, error) {
	// host:port without a scheme either fails to parse or parses with the host as scheme.
	baseURL, err := url.Parse(endpoint)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		baseURL, err = url.Parse("http://" + endpoint)
		if err != nil {
			return nil, fmt.Errorf("parsing address: %w", err)
		}
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("parsing address %q: missing host", endpoint)
	}
	return baseURL, nil
}

// Request describes a JSON call. Body and Result may be nil.
type Request struct {
	Method string
	URL    string
	Token  string
	Body   any
	Result any
}

// Do performs the request and decodes a 2xx response into req.Result.
func Do(ctx context.Context, client *retryablehttp.Client, req Request) error {
	var body io.Reader
	if req.Body != nil {
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	hreq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		hreq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	res, err := client.Do(hreq)
	if err != nil {
		return fmt.Errorf("doing request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading response body (%w)", err)
	}

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
	case res.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: response status code: %s, body: %s", ErrInvalidRequest, res.Status, string(data))
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: response status code: %s, body: %s", ErrUnauthorized, res.Status, string(data))
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: response status code: %s, body: %s", ErrNotFound, res.Status, string(data))
	case res.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: response status code: %s, body: %s", ErrConflict, res.Status, string(data))
	default:
		return fmt.Errorf("unrecognized error: status code: %s, body: %s", res.Status, string(data))
	}

	if req.Result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, req.Result); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}
