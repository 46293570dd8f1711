package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	bookingsJSON  bool
	bookingsClear bool
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List recorded tier choices",
	Args:  cobra.NoArgs,
	RunE:  runBookings,
}

func init() {
	bookingsCmd.Flags().BoolVar(&bookingsJSON, "json", false, "output as JSON")
	bookingsCmd.Flags().BoolVar(&bookingsClear, "clear", false, "remove all recorded choices")
	rootCmd.AddCommand(bookingsCmd)
}

func runBookings(cmd *cobra.Command, _ []string) error {
	if bookingService == nil {
		return errors.New("booking service not configured")
	}

	ctx := cmd.Context()
	if bookingsClear {
		if err := bookingService.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear bookings: %w", err)
		}
		cmd.Println("Cleared all booking choices.")
		return nil
	}

	choices, err := bookingService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	if bookingsJSON {
		return printJSON(cmd, choices)
	}

	if len(choices) == 0 {
		cmd.Println("No booking choices recorded.")
		return nil
	}

	// Tier names are best effort; the catalog may have changed since.
	tierNames := make(map[string]string)
	if catalogService != nil {
		if list, lerr := catalogService.List(ctx); lerr == nil {
			for i := range list {
				for _, tier := range list[i].Tiers {
					tierNames[list[i].ID+"/"+tier.ID] = tier.Name
				}
			}
		}
	}

	rows := make([][]string, len(choices))
	for i, c := range choices {
		tier := c.TierID
		if name, ok := tierNames[c.ServiceID+"/"+c.TierID]; ok {
			tier = name
		}
		rows[i] = []string{c.SelectedAt.Local().Format(time.DateTime), c.ServiceID, tier, c.ID}
	}
	return writeTable(cmd.OutOrStdout(), []string{"WHEN", "SERVICE", "TIER", "ID"}, rows)
}
