package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/geo"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/geocode"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"github.com/spf13/cobra"
)

// metersPerNauticalMile converts the --radius flag for the backend,
// which takes meters.
const metersPerNauticalMile = 1852.0

// NewReportsCmd creates the reports command with its subcommands.
func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse and submit condition reports",
		Long: `Reports browses crowd-sourced condition reports near a point and
submits new observations. Reports feed back into backend scoring.

Examples:
  # Reports within 5 nautical miles of a point
  boatride reports list --at 27.33640,-82.53070 --radius 5

  # Reports near a named place
  boatride reports list --near "venice inlet"

  # Report chop at the current anchorage
  boatride reports submit --at 27.33640,-82.53070 --category chop \
    --message "2ft wind chop, building"`,
	}

	cmd.AddCommand(newReportsListCmd())
	cmd.AddCommand(newReportsSubmitCmd())

	return cmd
}

// newReportsListCmd creates the reports list subcommand.
func newReportsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List condition reports near a point",
		Args:  cobra.NoArgs,
		RunE:  runReportsList,
	}

	addBackendFlags(cmd)
	cmd.Flags().String("at", "", "Center point as \"lat,lon\"")
	cmd.Flags().String("near", "", "Center on a named place (geocoded via OpenStreetMap)")
	cmd.Flags().String("route", "", "Center on the midpoint of a saved route")
	cmd.Flags().Float64("radius", 5, "Search radius in nautical miles")

	return cmd
}

// runReportsList lists recent reports around the requested point.
func runReportsList(cmd *cobra.Command, _ []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	center, err := resolveCenter(ctx, cmd, logger)
	if err != nil {
		return err
	}

	radius, err := cmd.Flags().GetFloat64("radius")
	if err != nil {
		return err
	}
	if radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", radius)
	}

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	reports, err := client.ListReports(ctx, center, radius*metersPerNauticalMile)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No reports within %.1f nm of %s.\n", radius, center)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "OBSERVED\tCATEGORY\tPOSITION\tMESSAGE")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatAge(r.ObservedAt),
			r.Category,
			r.Point.String(),
			r.Message,
		)
	}
	return w.Flush()
}

// resolveCenter returns the center point from --at, --near, or --route.
func resolveCenter(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) (model.RoutePoint, error) {
	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return model.RoutePoint{}, err
	}
	near, err := cmd.Flags().GetString("near")
	if err != nil {
		return model.RoutePoint{}, err
	}
	routeName, err := cmd.Flags().GetString("route")
	if err != nil {
		return model.RoutePoint{}, err
	}

	set := 0
	for _, v := range []string{at, near, routeName} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return model.RoutePoint{}, fmt.Errorf("--at, --near, and --route are mutually exclusive")
	}

	switch {
	case at != "":
		return parsePoint(at)
	case near != "":
		places, err := geocode.New().Search(ctx, near, 1)
		if err != nil {
			return model.RoutePoint{}, err
		}
		if len(places) == 0 {
			return model.RoutePoint{}, fmt.Errorf("no place found for %q", near)
		}
		logger.Debug("geocoded place", "query", near, "place", places[0].DisplayName)
		return places[0].Point, nil
	case routeName != "":
		return routeMidpoint(ctx, routeName)
	default:
		return model.RoutePoint{}, fmt.Errorf("no center point (use --at, --near, or --route)")
	}
}

// routeMidpoint loads a cached route and returns the point halfway along it.
func routeMidpoint(ctx context.Context, name string) (model.RoutePoint, error) {
	db, err := openCache()
	if err != nil {
		return model.RoutePoint{}, err
	}
	defer db.Close() //nolint:errcheck

	route, err := db.GetRouteByName(ctx, name)
	if err != nil {
		return model.RoutePoint{}, err
	}
	if route == nil {
		return model.RoutePoint{}, fmt.Errorf("route %q not in the local cache (run \"boatride routes list\" to refresh it)", name)
	}
	return geo.Midpoint(route.Points), nil
}

// formatAge renders how long ago a report was observed.
func formatAge(t time.Time) string {
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return t.Local().Format("2006-01-02 15:04")
	}
}

// newReportsSubmitCmd creates the reports submit subcommand.
func newReportsSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a condition report",
		Args:  cobra.NoArgs,
		RunE:  runReportsSubmit,
	}

	addBackendFlags(cmd)
	cmd.Flags().String("at", "", "Observation point as \"lat,lon\" (required)")
	cmd.Flags().String("category", "",
		"Observation category (chop, debris, fog, traffic, calm, ...) (required)")
	cmd.Flags().String("message", "", "Free-form observation text")

	return cmd
}

// runReportsSubmit publishes a condition report.
func runReportsSubmit(cmd *cobra.Command, _ []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return err
	}
	if at == "" {
		return fmt.Errorf("no observation point (use --at \"lat,lon\")")
	}
	point, err := parsePoint(at)
	if err != nil {
		return err
	}

	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}
	if category == "" {
		return fmt.Errorf("no category (use --category)")
	}

	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return err
	}

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	conditionReport := model.NewReport(point, category, message)
	if err := client.SubmitReport(ctx, conditionReport); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report submitted at %s\n", point)
	return nil
}
