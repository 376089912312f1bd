package main

import (
	"context"
	"fmt"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/api"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command with its subcommands.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and update your profile",
		Long: `Profile shows and updates the authenticated user's profile: display
name, home port, and default boat.

Examples:
  # Show the current profile
  boatride profile show

  # Set a display name and home port
  boatride profile update --name "Capt. Dana" --home-port 27.33640,-82.53070

  # Make a stored boat the default for scoring
  boatride profile update --default-boat "Sea Ray 220"`,
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

// newProfileShowCmd creates the profile show subcommand.
func newProfileShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileShow,
	}

	addBackendFlags(cmd)

	return cmd
}

// runProfileShow prints the authenticated user's profile.
func runProfileShow(cmd *cobra.Command, _ []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	profile, err := client.Me(ctx)
	if err != nil {
		return err
	}

	// Resolve the default boat ID to its name for display
	defaultBoat := "-"
	if profile.DefaultBoatID != "" {
		defaultBoat = profile.DefaultBoatID
		if boats, err := client.ListBoats(ctx); err == nil {
			for _, b := range boats {
				if b.ID == profile.DefaultBoatID {
					defaultBoat = b.Profile.Name
					break
				}
			}
		}
	}

	homePort := "-"
	if profile.HomePort != nil {
		homePort = profile.HomePort.String()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Display name: %s\n", orDash(profile.DisplayName))
	fmt.Fprintf(out, "Home port:    %s\n", homePort)
	fmt.Fprintf(out, "Default boat: %s\n", defaultBoat)
	return nil
}

// newProfileUpdateCmd creates the profile update subcommand.
func newProfileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the current profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileUpdate,
	}

	addBackendFlags(cmd)
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("home-port", "", "Home port as \"lat,lon\"")
	cmd.Flags().String("default-boat", "", "Name of the stored boat to score with by default")

	return cmd
}

// runProfileUpdate applies the requested profile changes.
// Unset flags leave the corresponding fields untouched.
func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	homePort, err := cmd.Flags().GetString("home-port")
	if err != nil {
		return err
	}
	defaultBoat, err := cmd.Flags().GetString("default-boat")
	if err != nil {
		return err
	}

	if name == "" && homePort == "" && defaultBoat == "" {
		return fmt.Errorf("nothing to update (use --name, --home-port, or --default-boat)")
	}

	client, err := backendClient(cmd, logger)
	if err != nil {
		return err
	}

	// Start from the stored profile so untouched fields survive the update
	profile, err := client.Me(ctx)
	if err != nil {
		return err
	}

	if name != "" {
		profile.DisplayName = name
	}

	if homePort != "" {
		point, err := parsePoint(homePort)
		if err != nil {
			return err
		}
		profile.HomePort = &point
	}

	if defaultBoat != "" {
		boat, err := findBoatByName(ctx, client, defaultBoat)
		if err != nil {
			return err
		}
		profile.DefaultBoatID = boat.ID
	}

	updated, err := client.UpdateMe(ctx, profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s\n", orDash(updated.DisplayName))
	return nil
}

// findBoatByName resolves a stored boat by profile name.
func findBoatByName(ctx context.Context, client *api.Client, name string) (*model.Boat, error) {
	boats, err := client.ListBoats(ctx)
	if err != nil {
		return nil, err
	}
	for i := range boats {
		if boats[i].Profile.Name == name {
			return &boats[i], nil
		}
	}
	return nil, fmt.Errorf("boat %q not found (add it with \"boatride boats add\")", name)
}
