package api

import (
	"errors"
	"fmt"
)

// Client configuration and transport errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoBaseURL is returned when the client is created without a backend URL.
	ErrNoBaseURL = errors.New("no backend URL configured")

	// ErrNoToken is returned when an authenticated call is made without a token.
	ErrNoToken = errors.New("no API token configured: set BOATRIDE_TOKEN or the token config key")

	// ErrUnauthorized is returned when the backend rejects the bearer token.
	ErrUnauthorized = errors.New("unauthorized: the API token was rejected")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned when the backend responds 429.
	ErrRateLimited = errors.New("rate limited by backend")

	// ErrServerError is returned for 5xx responses after retries are exhausted.
	ErrServerError = errors.New("backend server error")

	// ErrCircuitOpen is returned when the circuit breaker is open and
	// requests are failing fast without touching the network.
	ErrCircuitOpen = errors.New("circuit breaker open: backend is failing")
)

// Error is a typed API error carrying the HTTP status and the backend's
// error message, when it sent one.
type Error struct {
	// StatusCode is the HTTP status the backend responded with.
	StatusCode int

	// Message is the backend's error message, if the body carried one.
	Message string

	// err is the wrapped sentinel for errors.Is checks.
	err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Unwrap returns the sentinel error for the status class.
func (e *Error) Unwrap() error {
	return e.err
}

// newStatusError builds an *Error for a non-2xx response, wrapping the
// matching sentinel so callers can branch with errors.Is.
func newStatusError(statusCode int, message string) *Error {
	e := &Error{StatusCode: statusCode, Message: message}
	switch {
	case statusCode == 401 || statusCode == 403:
		e.err = ErrUnauthorized
	case statusCode == 404:
		e.err = ErrNotFound
	case statusCode == 429:
		e.err = ErrRateLimited
	case statusCode >= 500:
		e.err = ErrServerError
	}
	return e
}
