// Package main provides the entry point for the boatride CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for boatride.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boatride",
		Short: "Route-based ride-quality forecasts for boaters",
		Long: `boatride scores boating routes for ride quality.

Draw a route (or name a saved one), pick a departure time and cruising
speed, and boatride asks the scoring backend how the ride will feel at
each point along the way: a 0-100 score, a label (great/ok/rough/avoid),
and a display color for map overlays.

Set BOATRIDE_TOKEN (or a .env file) to authenticate with the backend.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewRoutesCmd())
	cmd.AddCommand(NewBoatsCmd())
	cmd.AddCommand(NewReportsCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewGeocodeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
