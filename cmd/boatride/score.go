package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/api"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/config"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/database"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/log"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/report"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/scheduler"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/trip"
	"github.com/spf13/cobra"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [route-name...]",
		Short: "Score a route for ride quality",
		Long: `Score sends a route to the backend and reports how the ride will feel
at each point along the way: a 0-100 score, a label (great/ok/rough/avoid),
and a display color.

Routes are named in the .boatride config file, saved on the backend, or
read from a file of "lat,lon" lines with --file.

Examples:
  # Score a named route departing now at the default speed
  boatride score sandbar

  # Score several routes concurrently
  boatride score sandbar inlet offshore

  # Score every configured and saved route
  boatride score --all

  # Pick a departure time and cruising speed
  boatride score sandbar --depart "2026-08-30 07:30" --speed 22

  # Score with a stored boat profile
  boatride score sandbar --boat "Sea Ray 220"

  # Ad-hoc route from a file of "lat,lon" lines
  boatride score --file saturday.txt

  # Re-score every 15 minutes until interrupted
  boatride score sandbar --watch --interval 15m

  # Output JSON or Markdown instead of the plain report
  boatride score sandbar --json
  boatride score sandbar --markdown -o report.md

Configuration file (.boatride) example:
  defaults:
    speedKnots: 18
  routes:
    sandbar:
      boat: "Sea Ray 220"
      points:
        - {lat: 27.33640, lon: -82.53070}
        - {lat: 27.31215, lon: -82.56950}
    offshore:
      speedKnots: 9
      depart: "07:00"`,
		Args: cobra.ArbitraryArgs,
		RunE: runScoreCmd,
	}

	// Trip parameter flags
	cmd.Flags().StringP("depart", "d", "",
		"Departure time (RFC 3339, \"2006-01-02 15:04\", or \"15:04\" for today; default: now)")
	cmd.Flags().Float64P("speed", "s", 0,
		fmt.Sprintf("Cruising speed in knots (default: route config or %.0f)", config.DefaultSpeedKnots))
	cmd.Flags().String("boat", "",
		"Boat profile name to score with (default: route config, then the backend's generic hull)")
	cmd.Flags().String("file", "",
		"Path to a file of \"lat,lon\" lines describing an ad-hoc route")
	cmd.Flags().Bool("all", false,
		"Score every route in the config file and saved on the backend")

	// Backend flags
	cmd.Flags().String("backend", "",
		"Backend base URL (default: BOATRIDE_BACKEND_URL or "+config.DefaultBackendURL+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each backend request")
	cmd.Flags().Bool("offline", false,
		"Skip the backend and render the trip plan (distance, ETAs) from local data")

	// Batch scoring flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scoring runs")

	// Watch mode flags
	cmd.Flags().BoolP("watch", "w", false,
		"Re-score on an interval until interrupted")
	cmd.Flags().Duration("interval", config.DefaultWatchInterval,
		"Delay between watch-mode scoring runs")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .boatride in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScoreCmd executes the score command.
func runScoreCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
	cfg.Verbose = verbose
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	if cfg.Watch {
		return runWatch(ctx, cfg, logger)
	}

	return runScore(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	depart, err := cmd.Flags().GetString("depart")
	if err != nil {
		return nil, err
	}
	if depart != "" {
		cfg.Departure, err = parseDeparture(depart, time.Now())
		if err != nil {
			return nil, err
		}
	}

	cfg.SpeedKnots, err = cmd.Flags().GetFloat64("speed")
	if err != nil {
		return nil, err
	}

	cfg.BoatName, err = cmd.Flags().GetString("boat")
	if err != nil {
		return nil, err
	}

	cfg.RouteFile, err = cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}

	cfg.All, err = cmd.Flags().GetBool("all")
	if err != nil {
		return nil, err
	}

	backend, err := cmd.Flags().GetString("backend")
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.BackendURL = backend
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Offline, err = cmd.Flags().GetBool("offline")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.Watch, err = cmd.Flags().GetBool("watch")
	if err != nil {
		return nil, err
	}

	cfg.WatchInterval, err = cmd.Flags().GetDuration("interval")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load route configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.RouteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.RouteConfigs = &config.File{
			Routes: make(map[string]config.RouteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Token and backend URL from the environment (and .env)
	cfg.ApplyEnv()

	// Always cache scored trips using the XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	// Positional arguments are route names
	cfg.Routes = args

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// The secure handler keeps the backend API token out of log output.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// departureFormats are accepted by --depart, tried in order.
var departureFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseDeparture parses a departure time string. Bare "15:04" means today
// (or tomorrow if that time has already passed).
func parseDeparture(s string, now time.Time) (time.Time, error) {
	for _, format := range departureFormats {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return t, nil
		}
	}

	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		departure := time.Date(now.Year(), now.Month(), now.Day(),
			t.Hour(), t.Minute(), 0, 0, time.Local)
		if departure.Before(now) {
			departure = departure.AddDate(0, 0, 1)
		}
		return departure, nil
	}

	return time.Time{}, fmt.Errorf("invalid departure time %q (use RFC 3339, \"2006-01-02 15:04\", or \"15:04\")", s)
}

// parsePoint parses a "lat,lon" pair.
func parsePoint(s string) (model.RoutePoint, error) {
	lat, lon, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return model.RoutePoint{}, fmt.Errorf("invalid point %q (expected \"lat,lon\")", s)
	}

	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return model.RoutePoint{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lonF, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return model.RoutePoint{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	point := model.RoutePoint{Lat: latF, Lon: lonF}
	if err := point.Validate(); err != nil {
		return model.RoutePoint{}, err
	}
	return point, nil
}

// parseRouteFile reads a route from a file of "lat,lon" lines.
// Blank lines and lines starting with # are skipped.
func parseRouteFile(path string) ([]model.RoutePoint, error) {
	f, err := os.Open(path) //nolint:gosec // User-supplied route file path
	if err != nil {
		return nil, fmt.Errorf("failed to open route file: %w", err)
	}
	defer f.Close()

	var points []model.RoutePoint
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}

	return points, nil
}

// configRoutePoints converts config-file points to model points.
func configRoutePoints(points []config.Point) []model.RoutePoint {
	converted := make([]model.RoutePoint, len(points))
	for i, p := range points {
		converted[i] = model.RoutePoint{Lat: p.Lat, Lon: p.Lon}
	}
	return converted
}

// runScore executes one scoring pass over the configured routes.
func runScore(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scoring run",
		"routes", cfg.Routes,
		"all", cfg.All,
		"offline", cfg.Offline,
		"batchSize", cfg.BatchSize,
	)

	// Open local cache if saving is enabled
	var db *database.TripDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open trip cache: %w", err)
		}
		defer db.Close()
		logger.Debug("trip cache opened", "dir", cfg.DBDir)
	}

	// Create the backend client unless running offline
	var client *api.Client
	if !cfg.Offline {
		var err error
		client, err = api.New(cfg.BackendURL, cfg.Token,
			api.WithTimeout(cfg.Timeout),
			api.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("failed to create backend client: %w", err)
		}
	}

	routes, err := resolveRoutes(ctx, cfg, db, client, logger)
	if err != nil {
		return err
	}
	if len(routes) == 0 {
		return errors.New("no routes to score (name a route, use --file, or --all)")
	}

	boats, err := loadBoatProfiles(ctx, cfg, db, client, logger)
	if err != nil {
		return err
	}

	// Use the batch processor for concurrent scoring if multiple routes
	if len(routes) > 1 && cfg.BatchSize > 1 {
		return runBatchScore(ctx, cfg, client, db, boats, routes, logger)
	}

	// Single route or sequential scoring
	return runSequentialScore(ctx, cfg, client, db, boats, routes, logger)
}

// runSequentialScore scores routes one at a time.
func runSequentialScore(ctx context.Context, cfg *config.Config, client *api.Client, db *database.TripDB, boats map[string]model.BoatProfile, routes []model.SavedRoute, logger *slog.Logger) error {
	for _, route := range routes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p, err := createPipelineForRoute(cfg, client, boats, route, logger)
		if err != nil {
			return err
		}

		scored := model.NewTrip(route.Points)
		scored.RouteName = route.Name

		startTime := time.Now()

		// Execute the pipeline
		if err := p.Execute(ctx, scored); err != nil {
			logger.Error("scoring failed", "route", route.Name, "error", err)
			fmt.Fprintf(os.Stderr, "Scoring error for %s: %v\n", route.Name, err)
			continue
		}

		logger.Debug("scoring completed",
			"route", route.Name,
			"elapsed", time.Since(startTime).Round(time.Millisecond),
		)

		// Generate and output report
		if err := outputReport(cfg, scored); err != nil {
			logger.Error("report failed", "route", route.Name, "error", err)
		}

		// Save to the local cache if enabled
		if err := saveTrip(ctx, db, cfg, scored, logger); err != nil {
			logger.Error("failed to save trip", "route", route.Name, "error", err)
		}
	}

	return nil
}

// runBatchScore scores multiple routes concurrently using BatchProcessor.
func runBatchScore(ctx context.Context, cfg *config.Config, client *api.Client, db *database.TripDB, boats map[string]model.BoatProfile, routes []model.SavedRoute, logger *slog.Logger) error {
	fmt.Printf("Scoring %d routes (concurrency: %d)...\n\n",
		len(routes), cfg.BatchSize)

	startTime := time.Now()

	bp := trip.NewBatchProcessor(
		func(route model.SavedRoute) *trip.Pipeline {
			p, err := createPipelineForRoute(cfg, client, boats, route, logger)
			if err != nil {
				// Departure parse errors were caught while resolving routes;
				// fall back to an empty pipeline that records the error.
				logger.Error("pipeline setup failed", "route", route.Name, "error", err)
				return trip.New(trip.WithLogger(logger))
			}
			return p
		},
		trip.WithConcurrency(cfg.BatchSize),
		trip.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, routes, func(scored *model.Trip, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Scored: %s\n", index+1, len(routes), scored.RouteName)

		// Generate and output report
		if err := outputReport(cfg, scored); err != nil {
			logger.Error("report failed", "route", scored.RouteName, "error", err)
		}

		// Save to the local cache if enabled
		if err := saveTrip(ctx, db, cfg, scored, logger); err != nil {
			logger.Error("failed to save trip", "route", scored.RouteName, "error", err)
		}
	})

	fmt.Printf("\nScoring completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return err
}

// runWatch re-runs the scoring pass on an interval until the context is
// cancelled or a fixed departure has passed. Each run re-resolves routes
// and re-derives a defaulted departure, so the report tracks the freshest
// forecast.
func runWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Watching: re-scoring every %s (Ctrl-C to stop)\n\n", cfg.WatchInterval)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(cfg.WatchInterval,
		func(jobCtx context.Context) error {
			if watchExpired(cfg.Departure, time.Now()) {
				fmt.Println("Departure has passed; stopping watch")
				cancel()
				return nil
			}
			return runScore(jobCtx, cfg, logger)
		},
		scheduler.WithLogger(logger),
		scheduler.WithTimeout(cfg.WatchInterval),
	)

	err := sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchExpired reports whether a fixed departure is already behind us.
// A zero departure means each run derives its own, so the watch never
// expires on its own.
func watchExpired(departure, now time.Time) bool {
	return !departure.IsZero() && now.After(departure)
}

// resolveRoutes turns the configured route sources (names, --file, --all)
// into concrete routes with points.
func resolveRoutes(ctx context.Context, cfg *config.Config, db *database.TripDB, client *api.Client, logger *slog.Logger) ([]model.SavedRoute, error) {
	var routes []model.SavedRoute
	seen := make(map[string]bool)

	// Ad-hoc route from a file
	if cfg.RouteFile != "" {
		points, err := parseRouteFile(cfg.RouteFile)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(cfg.RouteFile), filepath.Ext(cfg.RouteFile))
		routes = append(routes, model.SavedRoute{Name: name, Points: points})
		seen[name] = true
	}

	names := cfg.Routes
	if cfg.All {
		names = append(names, allRouteNames(ctx, cfg, db, client, logger)...)
	}

	for _, name := range names {
		if seen[name] {
			continue
		}
		route, err := resolveRoute(ctx, cfg, db, client, name)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
		seen[name] = true
	}

	return routes, nil
}

// allRouteNames collects route names from the config file, the local cache,
// and the backend. Failures to reach the backend degrade to local names.
func allRouteNames(ctx context.Context, cfg *config.Config, db *database.TripDB, client *api.Client, logger *slog.Logger) []string {
	nameSet := make(map[string]bool)

	if cfg.RouteConfigs != nil {
		for _, name := range cfg.RouteConfigs.RouteNames() {
			nameSet[name] = true
		}
	}

	if db != nil {
		if cached, err := db.ListRoutes(ctx); err == nil {
			for _, r := range cached {
				nameSet[r.Name] = true
			}
		}
	}

	if client != nil {
		saved, err := client.ListRoutes(ctx)
		if err != nil {
			logger.Warn("failed to list backend routes, using local routes only", "error", err)
		}
		for _, r := range saved {
			nameSet[r.Name] = true
		}
	}

	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveRoute finds the points for a named route: the config file first,
// then the local cache, then the backend.
func resolveRoute(ctx context.Context, cfg *config.Config, db *database.TripDB, client *api.Client, name string) (*model.SavedRoute, error) {
	if cfg.RouteConfigs != nil {
		routeCfg := cfg.RouteConfigs.GetRouteConfig(name)
		if len(routeCfg.Points) > 0 {
			return &model.SavedRoute{
				Name:   name,
				Points: configRoutePoints(routeCfg.Points),
			}, nil
		}
	}

	if db != nil {
		cached, err := db.GetRouteByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read route cache: %w", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	if client != nil {
		saved, err := client.ListRoutes(ctx)
		if err != nil {
			return nil, fmt.Errorf("route %q not found locally and backend lookup failed: %w", name, err)
		}
		for i := range saved {
			if saved[i].Name == name {
				// Cache for offline use next time
				if db != nil {
					_ = db.UpsertRoute(ctx, &saved[i]) //nolint:errcheck // Cache miss is not fatal
				}
				return &saved[i], nil
			}
		}
	}

	return nil, fmt.Errorf("route %q not found (define it in .boatride, save it with \"boatride routes save\", or use --file)", name)
}

// loadBoatProfiles loads the stored boat profiles by name for fast lookup,
// preferring the local cache and merging in backend boats.
func loadBoatProfiles(ctx context.Context, cfg *config.Config, db *database.TripDB, client *api.Client, logger *slog.Logger) (map[string]model.BoatProfile, error) {
	profiles := make(map[string]model.BoatProfile)

	if client != nil {
		boats, err := client.ListBoats(ctx)
		if err != nil {
			// Boats are optional personalization; a backend failure here
			// should not block scoring with the generic hull.
			logger.Warn("failed to list backend boats", "error", err)
		}
		for _, b := range boats {
			profiles[b.Profile.Name] = b.Profile
			if db != nil {
				_ = db.UpsertBoat(ctx, &b) //nolint:errcheck // Cache write is best effort
			}
		}
	}

	if db != nil {
		cached, err := db.ListBoats(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read boat cache: %w", err)
		}
		for _, b := range cached {
			if _, ok := profiles[b.Profile.Name]; !ok {
				profiles[b.Profile.Name] = b.Profile
			}
		}
	}

	return profiles, nil
}

// resolveBoat picks the boat profile for a route. Precedence: --boat flag,
// then the route's configured boat. Naming a boat that does not exist is an
// error; naming none scores with the backend's generic hull.
func resolveBoat(cfg *config.Config, boats map[string]model.BoatProfile, routeCfg config.RouteConfig) (model.BoatProfile, error) {
	name := cfg.BoatName
	if name == "" {
		name = routeCfg.Boat
	}
	if name == "" {
		return model.BoatProfile{}, nil
	}

	profile, ok := boats[name]
	if !ok {
		return model.BoatProfile{}, fmt.Errorf("boat %q not found (add it with \"boatride boats add\")", name)
	}
	return profile, nil
}

// createPipelineForRoute assembles the scoring workflow for one route,
// merging the route's config-file overrides with the CLI flags.
func createPipelineForRoute(cfg *config.Config, client *api.Client, boats map[string]model.BoatProfile, route model.SavedRoute, logger *slog.Logger) (*trip.Pipeline, error) {
	var routeCfg config.RouteConfig
	if cfg.RouteConfigs != nil {
		routeCfg = cfg.RouteConfigs.GetRouteConfig(route.Name)
	}

	boat, err := resolveBoat(cfg, boats, routeCfg)
	if err != nil {
		return nil, err
	}

	// Speed: flag overrides route config; zero falls through to the default
	speed := cfg.SpeedKnots
	if speed == 0 {
		speed = routeCfg.SpeedKnots
	}

	// Departure: flag overrides route config; zero means "now"
	departure := cfg.Departure
	if departure.IsZero() && routeCfg.Depart != "" {
		departure, err = parseDeparture(routeCfg.Depart, time.Now())
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", route.Name, err)
		}
	}

	params := trip.Params{
		Departure:  departure,
		SpeedKnots: speed,
		Boat:       boat,
		RouteName:  route.Name,
	}

	opts := []trip.Option{trip.WithLogger(logger)}

	if cfg.Offline {
		return trip.PlanPipeline(params, opts...), nil
	}
	return trip.DefaultPipeline(client, params, opts...), nil
}

// outputReport outputs the scored trip in the requested format.
func outputReport(cfg *config.Config, scored *model.Trip) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with owner-only permissions.
		// Reports embed route waypoints, which can reveal home moorings.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full trip with all samples)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(scored)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(scored)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(scored)
	return err
}

// saveTrip saves a scored trip to the local cache if enabled.
// Unscored plans (offline mode) and failed runs are not saved.
func saveTrip(ctx context.Context, db *database.TripDB, cfg *config.Config, scored *model.Trip, logger *slog.Logger) error {
	if db == nil || cfg.Offline {
		return nil
	}
	if scored.Error != nil || scored.ScoredAt.IsZero() {
		return nil
	}

	if err := db.SaveTrip(ctx, scored); err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}

	logger.Debug("trip saved", "route", scored.RouteName)
	return nil
}
