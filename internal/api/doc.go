// Package api provides the REST client for the boat-ride scoring backend.
//
// The client wraps net/http with:
//   - Bearer-token authentication injected on every request
//   - Retries with exponential backoff for transient failures
//   - A circuit breaker so a struggling backend fails fast
//   - Typed errors carrying the HTTP status and backend message
//
// The backend owns all scoring, weather/tide fusion, and routing
// intelligence; this package only moves JSON over HTTP.
package api
