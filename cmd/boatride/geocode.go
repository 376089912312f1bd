package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/geocode"
	"github.com/spf13/cobra"
)

// NewGeocodeCmd creates the geocode command.
func NewGeocodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geocode [query...]",
		Short: "Look up coordinates for a place name",
		Long: `Geocode searches OpenStreetMap's Nominatim service for a place name
and prints candidate coordinates, ready to paste into a route file.

Examples:
  boatride geocode venice inlet
  boatride geocode "point of rocks" --limit 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGeocode,
	}

	cmd.Flags().IntP("limit", "l", 5, "Maximum number of results")

	return cmd
}

// runGeocode searches for the place and prints candidates.
func runGeocode(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	ctx := signalContext(logger)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	places, err := geocode.New().Search(ctx, query, limit)
	if err != nil {
		return err
	}

	if len(places) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No places found for %q.\n", query)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "POSITION\tTYPE\tNAME")
	for _, p := range places {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Point.String(), orDash(p.Type), p.DisplayName)
	}
	return w.Flush()
}
