package main

import (
	"fmt"
	"log/slog"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/api"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/config"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/database"
	"github.com/spf13/cobra"
)

// addBackendFlags registers the flags shared by every command that talks to
// the backend.
func addBackendFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "",
		"Backend base URL (default: BOATRIDE_BACKEND_URL or "+config.DefaultBackendURL+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each backend request")
}

// backendClient builds an api.Client from the backend flags and environment.
func backendClient(cmd *cobra.Command, logger *slog.Logger) (*api.Client, error) {
	cfg := config.NewConfig()

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

	cfg.ApplyEnv()

	client, err := api.New(cfg.BackendURL, cfg.Token,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// openCache opens the local trip cache in the XDG data directory.
func openCache() (*database.TripDB, error) {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open trip cache: %w", err)
	}
	return db, nil
}

// commandLogger sets up the default logger for a resource command.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}
