package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/config"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// TestNewScoreCmd tests the score command creation.
func TestNewScoreCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScoreCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "score [route-name...]" {
			t.Errorf("expected use 'score [route-name...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has depart flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("depart")
		if flag == nil {
			t.Fatal("expected depart flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
	})

	t.Run("has speed flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("speed")
		if flag == nil {
			t.Fatal("expected speed flag")
		}
		if flag.Shorthand != "s" {
			t.Errorf("expected shorthand 's', got %q", flag.Shorthand)
		}
	})

	t.Run("has boat flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("boat") == nil {
			t.Fatal("expected boat flag")
		}
	})

	t.Run("has file flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("file") == nil {
			t.Fatal("expected file flag")
		}
	})

	t.Run("has all flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("all") == nil {
			t.Fatal("expected all flag")
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has watch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("watch")
		if flag == nil {
			t.Fatal("expected watch flag")
		}
		if flag.Shorthand != "w" {
			t.Errorf("expected shorthand 'w', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("does not have token flag (environment only)", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("token") != nil {
			t.Error("token flag should not exist (tokens stay out of process lists)")
		}
	})

	t.Run("does not have db-dir flag (uses XDG)", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("db-dir") != nil {
			t.Error("db-dir flag should not exist (always uses XDG data directory)")
		}
	})
}

// TestWatchExpired tests the watch-mode stop condition.
func TestWatchExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		departure time.Time
		expected  bool
	}{
		{"zero departure never expires", time.Time{}, false},
		{"future departure keeps watching", now.Add(2 * time.Hour), false},
		{"past departure stops the watch", now.Add(-time.Minute), true},
		{"exact departure keeps watching", now, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := watchExpired(tc.departure, now); got != tc.expected {
				t.Errorf("watchExpired(%v, %v) = %v, expected %v",
					tc.departure, now, got, tc.expected)
			}
		})
	}
}

// TestSetupLogger tests the logger setup.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("creates logger for verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(true)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("creates logger for non-verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(false)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewScoreCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		scoreCmd, _, err := root.Find([]string{"score"})
		if err != nil {
			t.Fatalf("failed to find score command: %v", err)
		}

		result := getVerboseFlag(scoreCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewScoreCmd()
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if len(cfg.Routes) != 1 || cfg.Routes[0] != "sandbar" {
			t.Errorf("expected routes [sandbar], got %v", cfg.Routes)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
		if cfg.DBDir == "" {
			t.Error("expected DBDir to be set")
		}
	})

	t.Run("builds config with custom speed", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("speed", "22.5")
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.SpeedKnots != 22.5 {
			t.Errorf("expected SpeedKnots 22.5, got %v", cfg.SpeedKnots)
		}
	})

	t.Run("builds config with custom batch size", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("batch", "8")
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BatchSize != 8 {
			t.Errorf("expected BatchSize 8, got %d", cfg.BatchSize)
		}
	})

	t.Run("builds config with departure time", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("depart", "2026-08-30 07:30")
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 8, 30, 7, 30, 0, 0, time.Local)
		if !cfg.Departure.Equal(want) {
			t.Errorf("expected departure %v, got %v", want, cfg.Departure)
		}
	})

	t.Run("returns error for invalid departure time", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("depart", "sometime tomorrow")
		_, err := buildConfig(cmd, []string{"sandbar"})
		if err == nil {
			t.Fatal("expected error for invalid departure time")
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("builds config with multiple routes", func(t *testing.T) {
		cmd := NewScoreCmd()
		cfg, err := buildConfig(cmd, []string{"sandbar", "inlet", "offshore"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Routes) != 3 {
			t.Errorf("expected 3 routes, got %d", len(cfg.Routes))
		}
	})

	t.Run("builds config with valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "boatride.yaml")

		content := []byte(`
defaults:
  speedKnots: 18
routes:
  sandbar:
    boat: skiff
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.RouteConfigs == nil {
			t.Fatal("expected RouteConfigs to be loaded")
		}
		if cfg.RouteConfigs.Defaults.SpeedKnots != 18 {
			t.Errorf("expected default speed 18, got %v", cfg.RouteConfigs.Defaults.SpeedKnots)
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		content := []byte(`{invalid yaml`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("config", configPath)
		_, err := buildConfig(cmd, []string{"sandbar"})
		if err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := buildConfig(cmd, []string{"sandbar"})
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got %v", err)
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		cmd := NewScoreCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, err := buildConfig(cmd, []string{"sandbar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})
}

// TestParseDeparture tests departure time parsing.
func TestParseDeparture(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.Local)

	t.Run("parses RFC 3339", func(t *testing.T) {
		t.Parallel()
		got, err := parseDeparture("2026-08-30T07:30:00Z", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 8, 30, 7, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("parses date and time", func(t *testing.T) {
		t.Parallel()
		got, err := parseDeparture("2026-08-30 07:30", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 8, 30, 7, 30, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("bare time later today stays today", func(t *testing.T) {
		t.Parallel()
		got, err := parseDeparture("16:30", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 8, 29, 16, 30, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("bare time already passed rolls to tomorrow", func(t *testing.T) {
		t.Parallel()
		got, err := parseDeparture("07:00", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 8, 30, 7, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		if _, err := parseDeparture("high tide", now); err == nil {
			t.Error("expected error for unparseable departure")
		}
	})
}

// TestParsePoint tests "lat,lon" parsing.
func TestParsePoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    model.RoutePoint
		wantErr bool
	}{
		{
			name:  "plain pair",
			input: "27.33640,-82.53070",
			want:  model.RoutePoint{Lat: 27.3364, Lon: -82.5307},
		},
		{
			name:  "pair with spaces",
			input: " 27.33640 , -82.53070 ",
			want:  model.RoutePoint{Lat: 27.3364, Lon: -82.5307},
		},
		{
			name:    "missing comma",
			input:   "27.33640 -82.53070",
			wantErr: true,
		},
		{
			name:    "non-numeric latitude",
			input:   "north,-82.5",
			wantErr: true,
		},
		{
			name:    "latitude out of range",
			input:   "91.0,-82.5",
			wantErr: true,
		},
		{
			name:    "longitude out of range",
			input:   "27.3,-181.0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parsePoint(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestParseRouteFile tests route file parsing.
func TestParseRouteFile(t *testing.T) {
	t.Parallel()

	t.Run("parses points and skips comments", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "route.txt")
		content := []byte(`# Saturday sandbar run
27.33640,-82.53070

27.32410,-82.55120
27.31215,-82.56950
`)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write route file: %v", err)
		}

		points, err := parseRouteFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) != 3 {
			t.Fatalf("expected 3 points, got %d", len(points))
		}
		if points[0].Lat != 27.3364 {
			t.Errorf("expected first lat 27.3364, got %v", points[0].Lat)
		}
	})

	t.Run("reports line number on bad point", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "route.txt")
		content := []byte("27.33640,-82.53070\nnot-a-point\n")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write route file: %v", err)
		}

		_, err := parseRouteFile(path)
		if err == nil {
			t.Fatal("expected error for malformed point")
		}
		if !strings.Contains(err.Error(), ":2:") {
			t.Errorf("expected line number in error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := parseRouteFile(filepath.Join(t.TempDir(), "missing.txt"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// TestResolveBoat tests boat profile resolution.
func TestResolveBoat(t *testing.T) {
	t.Parallel()

	boats := map[string]model.BoatProfile{
		"skiff":       {Name: "skiff", LengthMeters: 5.2},
		"Sea Ray 220": {Name: "Sea Ray 220", LengthMeters: 6.7},
	}

	t.Run("flag takes precedence over route config", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{BoatName: "skiff"}
		routeCfg := config.RouteConfig{Boat: "Sea Ray 220"}

		got, err := resolveBoat(cfg, boats, routeCfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "skiff" {
			t.Errorf("expected skiff, got %q", got.Name)
		}
	})

	t.Run("falls back to route config boat", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{}
		routeCfg := config.RouteConfig{Boat: "Sea Ray 220"}

		got, err := resolveBoat(cfg, boats, routeCfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Sea Ray 220" {
			t.Errorf("expected Sea Ray 220, got %q", got.Name)
		}
	})

	t.Run("no boat named means generic hull", func(t *testing.T) {
		t.Parallel()
		got, err := resolveBoat(&config.Config{}, boats, config.RouteConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "" {
			t.Errorf("expected empty profile, got %q", got.Name)
		}
	})

	t.Run("unknown boat is an error", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{BoatName: "yacht"}
		_, err := resolveBoat(cfg, boats, config.RouteConfig{})
		if err == nil {
			t.Error("expected error for unknown boat")
		}
	})
}

// TestCreatePipelineForRoute tests workflow assembly.
func TestCreatePipelineForRoute(t *testing.T) {
	t.Parallel()

	route := model.SavedRoute{
		Name: "sandbar",
		Points: []model.RoutePoint{
			{Lat: 27.3364, Lon: -82.5307},
			{Lat: 27.3121, Lon: -82.5695},
		},
	}

	t.Run("offline builds plan-only workflow", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Offline = true

		p, err := createPipelineForRoute(cfg, nil, nil, route, setupLogger(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.StepCount() != 3 {
			t.Errorf("expected 3 steps for offline plan, got %d", p.StepCount())
		}
	})

	t.Run("online builds full workflow", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()

		p, err := createPipelineForRoute(cfg, nil, nil, route, setupLogger(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.StepCount() != 5 {
			t.Errorf("expected 5 steps for scoring workflow, got %d", p.StepCount())
		}
	})

	t.Run("bad route config departure is an error", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.RouteConfigs = &config.File{
			Routes: map[string]config.RouteConfig{
				"sandbar": {Depart: "high tide"},
			},
		}

		_, err := createPipelineForRoute(cfg, nil, nil, route, setupLogger(false))
		if err == nil {
			t.Error("expected error for unparseable route departure")
		}
	})
}

// TestOutputReport tests report output destinations and formats.
func TestOutputReport(t *testing.T) {
	scored := &model.Trip{
		RouteName: "sandbar",
		Points: []model.RoutePoint{
			{Lat: 27.3364, Lon: -82.5307},
			{Lat: 27.3121, Lon: -82.5695},
		},
		Departure:      time.Date(2026, 8, 30, 7, 30, 0, 0, time.UTC),
		SpeedKnots:     18,
		DistanceMeters: 9260,
		Duration:       30 * time.Minute,
		Samples: []model.ScorePoint{
			{
				Point: model.RoutePoint{Lat: 27.3364, Lon: -82.5307},
				ETA:   time.Date(2026, 8, 30, 7, 30, 0, 0, time.UTC),
				Score: 88,
			},
		},
		ScoredAt: time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC),
	}

	t.Run("writes JSON report to file", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "out", "report.json")

		if err := outputReport(cfg, scored); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "sandbar") {
			t.Error("expected report to contain route name")
		}
	})

	t.Run("writes Markdown report to file", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "report.md")

		if err := outputReport(cfg, scored); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "Trip Report") {
			t.Error("expected Markdown report header")
		}
	})

	t.Run("report file has owner-only permissions", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.ReportFile = filepath.Join(t.TempDir(), "report.txt")

		if err := outputReport(cfg, scored); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to stat report: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}
