package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"github.com/spf13/cobra"
)

// NewRoutesCmd creates the routes command with its subcommands.
func NewRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Manage saved routes",
		Long: `Routes lists, saves, and deletes the routes stored on the backend.

Saved routes are mirrored into the local cache so they can be scored
offline and resolved without a network round trip.

Examples:
  # List saved routes
  boatride routes list

  # Save a route from a file of "lat,lon" lines
  boatride routes save sandbar --file sandbar.txt

  # Save a route from points on the command line
  boatride routes save sandbar -p 27.33640,-82.53070 -p 27.31215,-82.56950

  # Delete a saved route
  boatride routes delete sandbar`,
	}

	cmd.AddCommand(newRoutesListCmd())
	cmd.AddCommand(newRoutesSaveCmd())
	cmd.AddCommand(newRoutesDeleteCmd())

	return cmd
}

// newRoutesListCmd creates the routes list subcommand.
func newRoutesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved routes",
		Args:  cobra.NoArgs,
		RunE:  runRoutesList,
	}

	addBackendFlags(cmd)
	cmd.Flags().Bool("offline", false, "List only locally cached routes")

	return cmd
}

// runRoutesList lists routes from the backend, refreshing the local cache.
// With --offline (or when the backend is unreachable), the cache is listed.
func runRoutesList(cmd *cobra.Command, _ []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	offline, err := cmd.Flags().GetBool("offline")
	if err != nil {
		return err
	}

	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	var routes []model.SavedRoute
	if offline {
		routes, err = db.ListRoutes(ctx)
		if err != nil {
			return err
		}
	} else {
		client, err := backendClient(cmd, logger)
		if err != nil {
			return err
		}

		routes, err = client.ListRoutes(ctx)
		if err != nil {
			logger.Warn("backend unreachable, listing cached routes", "error", err)
			routes, err = db.ListRoutes(ctx)
			if err != nil {
				return err
			}
		} else {
			// Refresh the cache with the backend's copy
			for i := range routes {
				if err := db.UpsertRoute(ctx, &routes[i]); err != nil {
					logger.Warn("failed to cache route", "route", routes[i].Name, "error", err)
				}
			}
		}
	}

	if len(routes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved routes.")
		return nil
	}

	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOINTS\tSTART\tUPDATED")
	for _, r := range routes {
		start := "-"
		if len(r.Points) > 0 {
			start = r.Points[0].String()
		}
		updated := "-"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.Name, len(r.Points), start, updated)
	}
	return w.Flush()
}

// newRoutesSaveCmd creates the routes save subcommand.
func newRoutesSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [route-name]",
		Short: "Save a route to the backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoutesSave,
	}

	addBackendFlags(cmd)
	cmd.Flags().StringArrayP("point", "p", nil,
		"Route point as \"lat,lon\" (repeat in route order)")
	cmd.Flags().String("file", "",
		"Path to a file of \"lat,lon\" lines (alternative to --point)")

	return cmd
}

// runRoutesSave saves a named route to the backend and the local cache.
func runRoutesSave(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)
	name := args[0]

	rawPoints, err := cmd.Flags().GetStringArray("point")
	if err != nil {
		return err
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}

	var points []model.RoutePoint
	switch {
	case file != "" && len(rawPoints) > 0:
		return fmt.Errorf("--point and --file are mutually exclusive")
	case file != "":
		points, err = parseRouteFile(file)
		if err != nil {
			return err
		}
	case len(rawPoints) > 0:
		for _, raw := range rawPoints {
			point, err := parsePoint(raw)
			if err != nil {
				return err
			}
			points = append(points, point)
		}
	default:
		return fmt.Errorf("no route points (use --point or --file)")
	}

	// Normalize early so the user sees validation errors before the save
	points, err = model.NormalizeRoute(points)
	if err != nil {
		return err
	}

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	route := model.NewSavedRoute(name, points)
	saved, err := client.SaveRoute(ctx, route)
	if err != nil {
		return err
	}

	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.UpsertRoute(ctx, saved); err != nil {
		logger.Warn("failed to cache route", "route", name, "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved route %q (%d points)\n", saved.Name, len(saved.Points))
	return nil
}

// newRoutesDeleteCmd creates the routes delete subcommand.
func newRoutesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [route-name]",
		Short: "Delete a saved route",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoutesDelete,
	}

	addBackendFlags(cmd)

	return cmd
}

// runRoutesDelete deletes a route from the backend and the local cache.
func runRoutesDelete(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)
	name := args[0]

	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	// Resolve the route ID: cache first, then the backend
	route, err := db.GetRouteByName(ctx, name)
	if err != nil {
		return err
	}

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	if route == nil {
		saved, err := client.ListRoutes(ctx)
		if err != nil {
			return err
		}
		for i := range saved {
			if saved[i].Name == name {
				route = &saved[i]
				break
			}
		}
	}
	if route == nil {
		return fmt.Errorf("route %q not found", name)
	}

	if err := client.DeleteRoute(ctx, route.ID); err != nil {
		return err
	}
	if err := db.DeleteRoute(ctx, route.ID); err != nil {
		logger.Warn("failed to remove cached route", "route", name, "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted route %q\n", name)
	return nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx
}
