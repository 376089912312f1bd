package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Default client tuning. The backend sits on commodity hosting, so the
// values lean conservative.
const (
	// DefaultTimeout is the per-request timeout. Scoring a long route takes
	// the backend a few seconds of forecast interpolation, so this is
	// generous compared to a typical CRUD API.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the client in backend and Nominatim logs.
	DefaultUserAgent = "boatride/1.0 (+https://github.com/cmpeavlerjr72/boat-ride-app)"

	// defaultMaxBodySize caps how much of a response body we read.
	// Score responses are small; 2MB leaves ample headroom.
	defaultMaxBodySize = 2 * 1024 * 1024
)

// BackoffConfig controls exponential backoff behaviour for retries.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// defaultBackoff retries twice with short delays. Failures surface to the
// user immediately; two quiet retries cover transient network blips without
// changing that feel.
func defaultBackoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      2,
		InitialInterval: 300 * time.Millisecond,
		MaxInterval:     3 * time.Second,
	}
}

// Client talks to the boat-ride scoring backend.
//
// Design decision: one Client instance serves all endpoints rather than one
// per resource. The endpoints share auth, resilience, and decoding behaviour,
// and the command layer only ever needs a single handle.
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    BackoffConfig
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The bearer-injecting
// transport is still layered on top of the provided client's transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithBackoff overrides the retry backoff configuration.
func WithBackoff(b BackoffConfig) Option {
	return func(c *Client) {
		c.backoff = b
	}
}

// WithLogger sets a custom logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the backend at baseURL authenticating with the
// given bearer token. The token may be empty; calls then fail with
// ErrNoToken before touching the network.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		backoff:    defaultBackoff(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	// Layer the auth transport over whatever transport is configured
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &authTransport{base: base, token: token}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "boatride-backend",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return c, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// authTransport wraps an http.RoundTripper to inject the bearer token and
// User-Agent into every request, including retries.
//
// Design decision: injection happens at the transport rather than per
// request so no call path can forget it, and the token string stays out of
// the request-building code that gets logged.
type authTransport struct {
	base  http.RoundTripper
	token string
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", DefaultUserAgent)
	}
	return t.base.RoundTrip(clone)
}

// hasToken reports whether the transport carries a bearer token.
func (c *Client) hasToken() bool {
	at, ok := c.httpClient.Transport.(*authTransport)
	return ok && at.token != ""
}

// do executes a JSON request against the backend with retries, exponential
// backoff, and the circuit breaker, then decodes the response into out
// (which may be nil for endpoints with empty responses).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if !c.hasToken() {
		return ErrNoToken
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, err := c.breaker.Execute(func() (any, error) {
			return c.roundTrip(ctx, method, path, payload)
		})
		if err == nil {
			data, ok := result.([]byte)
			if !ok {
				return errors.New("unexpected result type from circuit breaker")
			}
			if out == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		}

		// A fast-failing breaker propagates immediately
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		// Client errors are not retryable
		if !isRetryable(err) {
			return err
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return lastErr
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		c.logger.Debug("retrying backend request",
			"method", method,
			"path", path,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

// roundTrip performs a single HTTP exchange and returns the response body.
// Non-2xx statuses become *Error values.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, decodeErrorMessage(data))
	}

	return data, nil
}

// isRetryable reports whether a request error is worth retrying.
// Rate limits and server errors are; everything in the 4xx class is not.
func isRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	// Network-level failures (timeouts, resets) are retryable
	return true
}

// decodeErrorMessage pulls the backend's error message out of an error body.
// The backend wraps errors as {"error": "..."} or {"message": "..."}.
func decodeErrorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
