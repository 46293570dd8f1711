package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

var selectCmd = &cobra.Command{
	Use:   "select [service-id] [tier-index]",
	Short: "Commit to a tier and record the booking choice",
	Long: `Commit to a service tier. The tier index is zero-based, as shown by
"tierdeck tiers". The choice is stored and shown as selected from then on.`,
	Args: cobra.ExactArgs(2),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	if catalogService == nil || carousel == nil {
		return errors.New("carousel not configured")
	}
	if bookingService == nil {
		return errors.New("booking service not configured")
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("tier index %q is not a number: %w", args[1], domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	svc, err := lookupService(ctx, args[0])
	if err != nil {
		return err
	}
	if err := syncCarousel(ctx); err != nil {
		return err
	}

	sel, ok := carousel.SelectTier(svc.ID, index)
	if !ok {
		return fmt.Errorf("service %q has no tier at index %d (valid: 0-%d): %w",
			svc.ID, index, max(svc.TierCount()-1, 0), domain.ErrInvalidInput)
	}

	choice, err := bookingService.Record(ctx, sel)
	if err != nil {
		return fmt.Errorf("failed to record choice: %w", err)
	}

	tier, _ := svc.TierAt(sel.TierIndex)
	cmd.Printf("Selected %s for %s at %s\n", tier.Name, svc.Name, domain.FormatPrice(tier.Price))
	cmd.Printf("Booking choice: %s\n", choice.ID)
	return nil
}
