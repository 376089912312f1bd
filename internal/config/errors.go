package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoRoute is returned when nothing to score is specified.
	// This error occurs when no route name, --file, or --all is provided.
	ErrNoRoute = errors.New("no route specified: provide a route name, --file, or --all")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scoring, effectively
	// stopping --all runs.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidSpeed is returned when the cruising speed is negative.
	// Use 0 to fall back to the route's configured speed or the default.
	ErrInvalidSpeed = errors.New("invalid speed: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrWatchIntervalTooShort is returned when the watch interval is below
	// one minute. Forecasts don't update that fast; faster polling only
	// burns the backend rate limit.
	ErrWatchIntervalTooShort = errors.New("watch interval too short: must be at least 1 minute")
)
