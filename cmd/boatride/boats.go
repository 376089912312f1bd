package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"github.com/spf13/cobra"
)

// NewBoatsCmd creates the boats command with its subcommands.
func NewBoatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boats",
		Short: "Manage boat profiles",
		Long: `Boats lists, adds, and deletes the boat profiles used to personalize
scoring. Dimensions are metric; wind speed is in knots.

Examples:
  # List stored boats
  boatride boats list

  # Add a 22-foot center console
  boatride boats add "Sea Ray 220" --type center-console --length 6.7 \
    --beam 2.6 --draft 0.5 --max-wave 1.0 --max-wind 20

  # Delete a boat
  boatride boats delete "Sea Ray 220"`,
	}

	cmd.AddCommand(newBoatsListCmd())
	cmd.AddCommand(newBoatsAddCmd())
	cmd.AddCommand(newBoatsDeleteCmd())

	return cmd
}

// newBoatsListCmd creates the boats list subcommand.
func newBoatsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored boat profiles",
		Args:  cobra.NoArgs,
		RunE:  runBoatsList,
	}

	addBackendFlags(cmd)
	cmd.Flags().Bool("offline", false, "List only locally cached boats")

	return cmd
}

// runBoatsList lists boats from the backend, refreshing the local cache.
func runBoatsList(cmd *cobra.Command, _ []string) error {
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

	var boats []model.Boat
	if offline {
		boats, err = db.ListBoats(ctx)
		if err != nil {
			return err
		}
	} else {
		client, err := backendClient(cmd, logger)
		if err != nil {
			return err
		}

		boats, err = client.ListBoats(ctx)
		if err != nil {
			logger.Warn("backend unreachable, listing cached boats", "error", err)
			boats, err = db.ListBoats(ctx)
			if err != nil {
				return err
			}
		} else {
			for i := range boats {
				if err := db.UpsertBoat(ctx, &boats[i]); err != nil {
					logger.Warn("failed to cache boat", "boat", boats[i].Profile.Name, "error", err)
				}
			}
		}
	}

	if len(boats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored boats.")
		return nil
	}

	sort.Slice(boats, func(i, j int) bool { return boats[i].Profile.Name < boats[j].Profile.Name })

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tLENGTH\tBEAM\tDRAFT\tMAX WAVE\tMAX WIND")
	for _, b := range boats {
		p := b.Profile
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			orDash(p.Type),
			meters(p.LengthMeters),
			meters(p.BeamMeters),
			meters(p.DraftMeters),
			meters(p.MaxWaveHeightMeters),
			knots(p.MaxWindSpeedKnots),
		)
	}
	return w.Flush()
}

// orDash returns "-" for an empty string.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// meters formats a metric dimension, "-" when unset.
func meters(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fm", v)
}

// knots formats a speed in knots, "-" when unset.
func knots(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0fkn", v)
}

// newBoatsAddCmd creates the boats add subcommand.
func newBoatsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [boat-name]",
		Short: "Add a boat profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runBoatsAdd,
	}

	addBackendFlags(cmd)
	cmd.Flags().String("type", "",
		"Hull category (center-console, pontoon, cruiser, sailboat, ...)")
	cmd.Flags().Float64("length", 0, "Length overall in meters (required)")
	cmd.Flags().Float64("beam", 0, "Beam in meters")
	cmd.Flags().Float64("draft", 0, "Draft in meters")
	cmd.Flags().Float64("max-wave", 0, "Comfort ceiling for wave height in meters")
	cmd.Flags().Float64("max-wind", 0, "Comfort ceiling for sustained wind in knots")
	cmd.Flags().Float64("min-depth", 0, "Minimum safe water depth in meters")

	return cmd
}

// runBoatsAdd registers a boat profile with the backend and caches it.
func runBoatsAdd(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	profile := model.BoatProfile{Name: args[0]}

	var err error
	if profile.Type, err = cmd.Flags().GetString("type"); err != nil {
		return err
	}
	if profile.LengthMeters, err = cmd.Flags().GetFloat64("length"); err != nil {
		return err
	}
	if profile.BeamMeters, err = cmd.Flags().GetFloat64("beam"); err != nil {
		return err
	}
	if profile.DraftMeters, err = cmd.Flags().GetFloat64("draft"); err != nil {
		return err
	}
	if profile.MaxWaveHeightMeters, err = cmd.Flags().GetFloat64("max-wave"); err != nil {
		return err
	}
	if profile.MaxWindSpeedKnots, err = cmd.Flags().GetFloat64("max-wind"); err != nil {
		return err
	}
	if profile.MinDepthMeters, err = cmd.Flags().GetFloat64("min-depth"); err != nil {
		return err
	}

	if err := profile.Validate(); err != nil {
		return err
	}

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	boat, err := client.CreateBoat(ctx, profile)
	if err != nil {
		return err
	}

	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.UpsertBoat(ctx, boat); err != nil {
		logger.Warn("failed to cache boat", "boat", profile.Name, "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added boat %q\n", boat.Profile.Name)
	return nil
}

// newBoatsDeleteCmd creates the boats delete subcommand.
func newBoatsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [boat-name]",
		Short: "Delete a boat profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runBoatsDelete,
	}

	addBackendFlags(cmd)

	return cmd
}

// runBoatsDelete deletes a boat from the backend and the local cache.
func runBoatsDelete(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)
	name := args[0]

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	// Resolve the boat ID by name: cache first, then the backend
	var boat *model.Boat
	cached, err := db.ListBoats(ctx)
	if err != nil {
		return err
	}
	for i := range cached {
		if cached[i].Profile.Name == name {
			boat = &cached[i]
			break
		}
	}

	if boat == nil {
		boats, err := client.ListBoats(ctx)
		if err != nil {
			return err
		}
		for i := range boats {
			if boats[i].Profile.Name == name {
				boat = &boats[i]
				break
			}
		}
	}
	if boat == nil {
		return fmt.Errorf("boat %q not found", name)
	}

	if err := client.DeleteBoat(ctx, boat.ID); err != nil {
		return err
	}
	if err := db.DeleteBoat(ctx, boat.ID); err != nil {
		logger.Warn("failed to remove cached boat", "boat", name, "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted boat %q\n", name)
	return nil
}
