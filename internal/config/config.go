package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for typical recreational trips and match what the
// backend assumes when a field is omitted.
const (
	// DefaultBackendURL is the production scoring backend.
	// Self-hosted deployments override this via --backend or
	// BOATRIDE_BACKEND_URL.
	DefaultBackendURL = "https://api.boatride.app"

	// DefaultTimeout is the per-request timeout for backend calls.
	// Scoring a 20-sample route is a single round trip, so 30 seconds is
	// generous even on a marina's flaky WiFi.
	DefaultTimeout = 30 * time.Second

	// DefaultSpeedKnots is the assumed cruising speed when the user gives
	// none. 8 knots is a reasonable displacement-hull cruise and keeps ETA
	// estimates conservative for faster boats.
	DefaultSpeedKnots = 8.0

	// DefaultBatchSize is the number of routes scored concurrently when
	// --all is used. The backend rate-limits per token, so this stays low.
	DefaultBatchSize = 4

	// DefaultWatchInterval is how often watch mode re-scores the route.
	// Marine forecasts update hourly at most; 30 minutes catches every
	// refresh without hammering the backend.
	DefaultWatchInterval = 30 * time.Minute

	// MinWatchInterval is the shortest allowed watch interval. Anything
	// faster than this just replays the same forecast data.
	MinWatchInterval = time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "boatride"
)

// Environment variable names. A .env file in the current directory is
// loaded first, so tokens never need to live in shell history.
const (
	// EnvToken carries the backend API token.
	EnvToken = "BOATRIDE_TOKEN"

	// EnvBackendURL overrides the backend base URL.
	EnvBackendURL = "BOATRIDE_BACKEND_URL"
)

// Config holds all configuration options for the boat-ride client.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScoreConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BackendURL is the base URL of the scoring backend.
	// Precedence: --backend flag, then BOATRIDE_BACKEND_URL, then the
	// production default.
	BackendURL string

	// Token is the backend API token. Populated from BOATRIDE_TOKEN (or a
	// .env file); never from a CLI flag so it stays out of process lists.
	Token string

	// Timeout is the per-request timeout for backend and geocoding calls.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of routes scored concurrently with --all.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .boatride in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// RouteConfigs holds named routes and per-route overrides loaded from
	// the config file. Populated by LoadConfigFile.
	RouteConfigs *File

	// Routes is the list of route names to score. Names resolve against
	// RouteConfigs first, then against routes saved on the backend.
	Routes []string

	// RouteFile is a path to a file of "lat,lon" lines describing an
	// ad-hoc route. Mutually additive with Routes.
	RouteFile string

	// All scores every named route in the config file plus every route
	// saved on the backend.
	All bool

	// Departure is when the boat leaves the first point. The zero value
	// means "now, rounded up to the next five minutes".
	Departure time.Time

	// SpeedKnots is the assumed cruising speed. Zero means use the
	// route's configured speed, falling back to DefaultSpeedKnots.
	SpeedKnots float64

	// BoatName selects which stored boat profile to score with. Empty
	// means the route's configured boat, then the user's default boat.
	BoatName string

	// Offline skips the backend call and renders the trip plan (distance,
	// ETA per sample) from local data only.
	Offline bool

	// Watch re-scores the route on an interval until interrupted.
	Watch bool

	// WatchInterval is the delay between watch-mode scoring runs.
	WatchInterval time.Duration

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite cache.
	// When set, scored trips are saved for history browsing and offline use.
	// Defaults to the XDG data directory (~/.local/share/boatride on Linux).
	DBDir string

	// SaveToDB indicates whether to save scored trips to the local cache.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, speed).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BackendURL:    DefaultBackendURL,
		Timeout:       DefaultTimeout,
		SpeedKnots:    DefaultSpeedKnots,
		BatchSize:     DefaultBatchSize,
		WatchInterval: DefaultWatchInterval,
	}
}

// XDGDataDir returns the XDG data directory for the boat-ride client.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/boatride
// On macOS: ~/Library/Application Support/boatride
// On Windows: %LOCALAPPDATA%\boatride
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the boat-ride client.
// On Linux: ~/.config/boatride
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for the boat-ride client.
// On Linux: ~/.cache/boatride
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scoring begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have something to score
	if len(c.Routes) == 0 && c.RouteFile == "" && !c.All {
		return ErrNoRoute
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// BatchSize must be positive; zero would mean no scoring
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// Negative speed is never valid; zero means "use the default"
	if c.SpeedKnots < 0 {
		return ErrInvalidSpeed
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Watch && c.WatchInterval < MinWatchInterval {
		return ErrWatchIntervalTooShort
	}

	return nil
}
