package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/services"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

var (
	tiersIndex int
	tiersJSON  bool
)

var tiersCmd = &cobra.Command{
	Use:   "tiers [service-id]",
	Short: "Show a service's tier carousel",
	Long: `Render the tier carousel for a service.

The carousel starts on the first tier. --index moves right that many
times; moves past the last tier stop there. Only the centred card and its
two neighbours are shown, and the edges of the carousel appear as blank
cards.`,
	Args: cobra.ExactArgs(1),
	RunE: runTiers,
}

func init() {
	tiersCmd.Flags().IntVarP(&tiersIndex, "index", "i", 0, "number of moves right from the first tier")
	tiersCmd.Flags().BoolVar(&tiersJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(tiersCmd)
}

// carouselView is the JSON shape of a rendered carousel.
type carouselView struct {
	ServiceID      string          `json:"serviceId"`
	CurrentIndex   int             `json:"currentIndex"`
	SelectedTierID string          `json:"selectedTierId,omitempty"`
	CanGoLeft      bool            `json:"canGoLeft"`
	CanGoRight     bool            `json:"canGoRight"`
	Slots          []slotView      `json:"slots"`
	Indicators     []indicatorView `json:"indicators,omitempty"`
}

type slotView struct {
	Index      int          `json:"index"`
	Role       domain.Role  `json:"role"`
	Dummy      bool         `json:"dummy"`
	TierIndex  int          `json:"tierIndex"`
	Tier       *domain.Tier `json:"tier,omitempty"`
	IsSelected bool         `json:"isSelected"`
}

type indicatorView struct {
	TierIndex int  `json:"tierIndex"`
	Active    bool `json:"active"`
}

func runTiers(cmd *cobra.Command, args []string) error {
	if catalogService == nil || carousel == nil {
		return errors.New("carousel not configured")
	}
	if tiersIndex < 0 {
		return fmt.Errorf("--index must not be negative: %w", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	svc, err := lookupService(ctx, args[0])
	if err != nil {
		return err
	}
	if err := syncCarousel(ctx); err != nil {
		return err
	}

	for range tiersIndex {
		carousel.GoRight(svc.ID, svc.Tiers)
	}

	view := buildCarouselView(svc)
	if tiersJSON {
		return printJSON(cmd, view)
	}
	return printCarousel(cmd, svc, view)
}

// syncCarousel loads the catalog into the carousel and replays the latest
// booking of each service.
func syncCarousel(ctx context.Context) error {
	list, err := loadServices(ctx)
	if err != nil {
		return err
	}
	carousel.SetServices(list)

	restored, err := services.RestoreSelections(ctx, carousel, bookingService)
	if err != nil {
		logger.Warn("could not restore selections: %v", err)
		return nil
	}
	logger.Debug("restored %d selections", restored)
	return nil
}

func buildCarouselView(svc *domain.Service) carouselView {
	state, _ := carousel.State(svc.ID)
	view := carouselView{
		ServiceID:      svc.ID,
		CurrentIndex:   state.CurrentIndex,
		SelectedTierID: state.SelectedTierID,
		CanGoLeft:      carousel.CanGoLeft(svc.ID),
		CanGoRight:     carousel.CanGoRight(svc.ID, svc.Tiers),
	}
	for _, slot := range carousel.RenderableSlots(svc.ID, svc.Tiers) {
		view.Slots = append(view.Slots, slotView{
			Index:      slot.Index,
			Role:       slot.Role,
			Dummy:      slot.Dummy,
			TierIndex:  slot.TierIndex,
			Tier:       slot.Tier,
			IsSelected: slot.IsSelected,
		})
	}
	for _, ind := range carousel.Indicators(svc.ID, svc.Tiers) {
		view.Indicators = append(view.Indicators, indicatorView(ind))
	}
	return view
}

func printCarousel(cmd *cobra.Command, svc *domain.Service, view carouselView) error {
	cmd.Printf("%s (%s)\n\n", svc.Name, svc.ID)

	if svc.TierCount() == 0 {
		cmd.Println("No tiers.")
		return nil
	}

	var rows [][]string
	for _, slot := range view.Slots {
		if slot.Role == domain.RoleHidden {
			continue
		}
		marker := roleMarker(slot.Role)
		if slot.Dummy {
			rows = append(rows, []string{marker, "", "", "", ""})
			continue
		}
		selected := ""
		if slot.IsSelected {
			selected = "selected"
		}
		rows = append(rows, []string{
			marker, strconv.Itoa(slot.TierIndex), slot.Tier.Name, priceLabel(*slot.Tier), selected,
		})
	}
	if err := writeTable(cmd.OutOrStdout(), []string{"", "INDEX", "TIER", "PRICE", ""}, rows); err != nil {
		return err
	}

	if len(view.Indicators) > 0 {
		dots := make([]string, len(view.Indicators))
		for i, ind := range view.Indicators {
			dots[i] = "○"
			if ind.Active {
				dots[i] = "●"
			}
		}
		cmd.Printf("\n%s\n", strings.Join(dots, " "))
	}
	return nil
}

func roleMarker(role domain.Role) string {
	switch role {
	case domain.RoleLeft:
		return "<"
	case domain.RoleCenter:
		return "*"
	case domain.RoleRight:
		return ">"
	default:
		return ""
	}
}
