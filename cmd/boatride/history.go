package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/config"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/database"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"github.com/spf13/cobra"
)

// Constants for condition trend direction.
const (
	trendImproved  = "improved"
	trendWorsened  = "worsened"
	trendUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command browses and compares scored trips cached in the local database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [route-name]",
		Short: "Browse and compare past scoring runs",
		Long: `History displays past scoring runs for a route and compares the latest
run against an earlier one, showing how conditions are trending.

Comparison requires at least two cached runs for the route. Trips are
cached automatically every time 'boatride score' succeeds.

Examples:
  # Compare the latest two runs for a route
  boatride history sandbar

  # List all cached runs for a route
  boatride history --list sandbar

  # Compare with a specific run by ID
  boatride history --with-trip-id 5 sandbar

  # Compare with the first run since a date
  boatride history --since "2026-08-01" sandbar

  # Output comparison in JSON format
  boatride history --json sandbar

  # List all routes with cached runs
  boatride history --list-routes`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List cached scoring runs for the specified route")
	cmd.Flags().BoolP("list-routes", "L", false,
		"List all routes with cached scoring runs")

	// Comparison target flags
	cmd.Flags().Int64P("with-trip-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-routes flag first (requires database but no route name)
	listRoutes, err := cmd.Flags().GetBool("list-routes")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database
	var routeName string
	if !listRoutes {
		if len(args) == 0 {
			return errors.New("route name is required (use --list-routes to see available routes)")
		}
		routeName = args[0]
	}

	// Use XDG data directory for the cache
	dbDir := config.XDGDataDir()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open trip cache: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-routes flag
	if listRoutes {
		return listScoredRoutes(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listTripHistory(ctx, db, routeName)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	withTripID, err := cmd.Flags().GetInt64("with-trip-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	// Perform comparison
	return runComparison(ctx, db, routeName, withTripID, sinceDate, jsonOutput)
}

// listScoredRoutes lists all routes that have cached scoring runs.
func listScoredRoutes(ctx context.Context, db *database.TripDB) error {
	names, err := db.ScoredRouteNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list routes: %w", err)
	}

	if len(names) == 0 {
		fmt.Println("No cached scoring runs found.")
		fmt.Println("\nUse 'boatride score <route>' to score a route and cache the result.")
		return nil
	}

	fmt.Printf("Routes with cached runs (%d):\n\n", len(names))
	for _, name := range names {
		fmt.Printf("  • %s\n", name)
	}
	fmt.Println("\nUse 'boatride history --list <route>' to see runs for a route.")

	return nil
}

// listTripHistory lists all cached scoring runs for a route.
func listTripHistory(ctx context.Context, db *database.TripDB, routeName string) error {
	history, err := db.TripHistory(ctx, routeName)
	if err != nil {
		return fmt.Errorf("failed to get trip history: %w", err)
	}

	if len(history) == 0 {
		fmt.Printf("No cached runs found for %s\n", routeName)
		fmt.Println("\nUse 'boatride score' to score this route.")
		return nil
	}

	fmt.Printf("Scoring runs for %s (%d runs):\n\n", routeName, len(history))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Scored", "Conditions")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range history {
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.ScoredAt.Format("2006-01-02 15:04:05"),
			formatLabelSummary(meta.LabelSummary),
		)
	}

	fmt.Println("\nUse 'boatride history <route>' to compare the latest two runs.")
	fmt.Println("Use 'boatride history --with-trip-id <id> <route>' to compare with a specific run.")

	return nil
}

// formatLabelSummary formats the label summary map into a human-readable
// string like "G:12 O:5 R:2".
func formatLabelSummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary[model.LabelGreat.String()]; v > 0 {
		parts = append(parts, fmt.Sprintf("G:%d", v))
	}
	if v := summary[model.LabelOK.String()]; v > 0 {
		parts = append(parts, fmt.Sprintf("O:%d", v))
	}
	if v := summary[model.LabelRough.String()]; v > 0 {
		parts = append(parts, fmt.Sprintf("R:%d", v))
	}
	if v := summary[model.LabelAvoid.String()]; v > 0 {
		parts = append(parts, fmt.Sprintf("A:%d", v))
	}

	if len(parts) == 0 {
		return "No samples"
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between cached runs.
func runComparison(ctx context.Context, db *database.TripDB, routeName string, withTripID int64, sinceDate string, jsonOutput bool) error {
	history, err := db.TripHistory(ctx, routeName)
	if err != nil {
		return fmt.Errorf("failed to get trip history: %w", err)
	}

	if len(history) == 0 {
		return fmt.Errorf("no cached runs found for %s", routeName)
	}

	if len(history) < 2 && withTripID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(history))
	}

	// Latest run is always the current one
	current, err := db.GetTripByID(ctx, history[0].ID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("run with ID %d not found", history[0].ID)
	}

	var previousID int64

	if withTripID > 0 {
		// Validate that the run belongs to this route
		found := false
		for _, meta := range history {
			if meta.ID == withTripID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("run with ID %d not found for %s (use --list to see available IDs)", withTripID, routeName)
		}
		previousID = withTripID
	} else if sinceDate != "" {
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// History is sorted newest first, so iterate in reverse to find the
		// oldest run at or after the date
		for i := len(history) - 1; i >= 0; i-- {
			meta := history[i]
			if !meta.ScoredAt.Before(parsedDate) {
				previousID = meta.ID
				break
			}
		}
		if previousID == 0 {
			return fmt.Errorf("no runs found since %s", sinceDate)
		}
		if previousID == history[0].ID {
			return fmt.Errorf("only one run found since %s; at least 2 runs are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the previous run
		previousID = history[1].ID
	}

	previous, err := db.GetTripByID(ctx, previousID)
	if err != nil {
		return err
	}
	if previous == nil {
		return fmt.Errorf("run with ID %d not found", previousID)
	}

	comparison := compareTrips(routeName, previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two scoring runs.
type ComparisonResult struct {
	// RouteName is the compared route.
	RouteName string `json:"route_name"`

	// PreviousRun contains summary data for the earlier run.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun contains summary data for the latest run.
	CurrentRun RunSummary `json:"current_run"`

	// Change describes the shift in conditions between the runs.
	Change ConditionChange `json:"change"`
}

// RunSummary contains summary data about one scoring run for display.
type RunSummary struct {
	// ScoredAt is when the run was scored.
	ScoredAt time.Time `json:"scored_at"`

	// Departure is the departure time the run was scored for.
	Departure time.Time `json:"departure"`

	// SampleCount is the number of scored samples.
	SampleCount int `json:"sample_count"`

	// GreatCount is the number of samples labeled great.
	GreatCount int `json:"great_count"`

	// OKCount is the number of samples labeled ok.
	OKCount int `json:"ok_count"`

	// RoughCount is the number of samples labeled rough.
	RoughCount int `json:"rough_count"`

	// AvoidCount is the number of samples labeled avoid.
	AvoidCount int `json:"avoid_count"`

	// AverageScore is the mean sample score.
	AverageScore float64 `json:"average_score"`
}

// ConditionChange describes the shift in conditions between two runs.
type ConditionChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// GreatDelta is the change in great-labeled samples.
	GreatDelta int `json:"great_delta"`

	// OKDelta is the change in ok-labeled samples.
	OKDelta int `json:"ok_delta"`

	// RoughDelta is the change in rough-labeled samples.
	RoughDelta int `json:"rough_delta"`

	// AvoidDelta is the change in avoid-labeled samples.
	AvoidDelta int `json:"avoid_delta"`

	// AverageDelta is the change in the mean sample score.
	AverageDelta float64 `json:"average_delta"`
}

// compareTrips compares two scoring runs and generates a comparison result.
func compareTrips(routeName string, previous, current *model.Trip) *ComparisonResult {
	result := &ComparisonResult{
		RouteName:   routeName,
		PreviousRun: summarizeRun(previous),
		CurrentRun:  summarizeRun(current),
	}
	result.Change = calculateChange(result.PreviousRun, result.CurrentRun)
	return result
}

// summarizeRun extracts the display summary from a cached trip.
func summarizeRun(t *model.Trip) RunSummary {
	counts := t.LabelCounts()
	return RunSummary{
		ScoredAt:     t.ScoredAt,
		Departure:    t.Departure,
		SampleCount:  len(t.Samples),
		GreatCount:   counts[model.LabelGreat.String()],
		OKCount:      counts[model.LabelOK.String()],
		RoughCount:   counts[model.LabelRough.String()],
		AvoidCount:   counts[model.LabelAvoid.String()],
		AverageScore: t.AverageScore(),
	}
}

// calculateChange calculates the shift in conditions between two runs.
// The direction follows the average score: a higher average is a better ride.
func calculateChange(previous, current RunSummary) ConditionChange {
	change := ConditionChange{
		GreatDelta:   current.GreatCount - previous.GreatCount,
		OKDelta:      current.OKCount - previous.OKCount,
		RoughDelta:   current.RoughCount - previous.RoughCount,
		AvoidDelta:   current.AvoidCount - previous.AvoidCount,
		AverageDelta: current.AverageScore - previous.AverageScore,
	}

	switch {
	case change.AverageDelta > 0.5:
		change.Direction = trendImproved
	case change.AverageDelta < -0.5:
		change.Direction = trendWorsened
	default:
		change.Direction = trendUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Condition Trend: %s\n", result.RouteName)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nTrend: %s\n", formatTrend(result.Change.Direction))

	fmt.Printf("\nPrevious run: %s (departing %s)\n",
		result.PreviousRun.ScoredAt.Local().Format("2006-01-02 15:04:05"),
		result.PreviousRun.Departure.Local().Format("Mon Jan 2 15:04"))
	fmt.Printf("Current run:  %s (departing %s)\n",
		result.CurrentRun.ScoredAt.Local().Format("2006-01-02 15:04:05"),
		result.CurrentRun.Departure.Local().Format("Mon Jan 2 15:04"))

	fmt.Println("\nConditions Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Label", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Great",
		result.PreviousRun.GreatCount, result.CurrentRun.GreatCount,
		formatDelta(result.Change.GreatDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "OK",
		result.PreviousRun.OKCount, result.CurrentRun.OKCount,
		formatDelta(result.Change.OKDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Rough",
		result.PreviousRun.RoughCount, result.CurrentRun.RoughCount,
		formatDelta(result.Change.RoughDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Avoid",
		result.PreviousRun.AvoidCount, result.CurrentRun.AvoidCount,
		formatDelta(result.Change.AvoidDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10.1f  %-10.1f  %-10s\n", "Average",
		result.PreviousRun.AverageScore, result.CurrentRun.AverageScore,
		formatScoreDelta(result.Change.AverageDelta))

	return nil
}

// formatTrend formats the condition trend direction for display.
func formatTrend(direction string) string {
	switch direction {
	case trendImproved:
		return "IMPROVED (smoother ride expected)"
	case trendWorsened:
		return "WORSENED (rougher ride expected)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatScoreDelta formats a score delta with sign for display.
func formatScoreDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.1f", delta)
	}
	return fmt.Sprintf("%.1f", delta)
}
