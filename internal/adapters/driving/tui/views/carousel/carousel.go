// Package carousel provides the tier carousel view for the TUI.
//
// The view shows at most three cards: the centred tier and its two
// neighbours. At either end of the carousel the missing neighbour is a
// blank placeholder of the same size so the centred card stays centred.
package carousel

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

const (
	minCardWidth = 18
	maxCardWidth = 34
	cardGap      = " "
)

// View renders one service's tiers as a carousel.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	controller driving.CarouselController
	booking    driving.BookingService
	ctx        context.Context

	service      *domain.Service
	featureNames domain.FeatureNames
	display      domain.DisplaySettings
	backTo       messages.ViewType

	width  int
	height int
	ready  bool
}

// NewView creates a carousel view. The booking service may be nil, in
// which case selections are committed but not recorded.
func NewView(s *styles.Styles, controller driving.CarouselController, booking driving.BookingService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		controller: controller,
		booking:    booking,
		ctx:        context.Background(),
		display:    domain.DefaultAppSettings().Display,
		backTo:     messages.ViewServices,
		width:      80,
		height:     24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetContext sets the context used for recording bookings.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// SetService sets the service shown. backTo is the view esc returns to.
func (v *View) SetService(svc *domain.Service, backTo messages.ViewType) {
	v.service = svc
	v.backTo = backTo
}

// Service returns the service shown, or nil.
func (v *View) Service() *domain.Service {
	return v.service
}

// SetFeatureNames sets the feature display names.
func (v *View) SetFeatureNames(names domain.FeatureNames) {
	v.featureNames = names
}

// SetDisplay sets the display options.
func (v *View) SetDisplay(display domain.DisplaySettings) {
	v.display = display
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Update handles messages for the carousel view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		backTo := v.backTo
		return v, func() tea.Msg {
			return messages.ViewChanged{View: backTo}
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, func() tea.Msg {
			return messages.ReloadRequested{}
		}
	}

	if v.service == nil || v.controller == nil {
		return v, nil
	}
	id := v.service.ID

	switch {
	case keymap.Matches(k, v.keymap.Left):
		v.controller.GoLeft(id)
	case keymap.Matches(k, v.keymap.Right):
		v.controller.GoRight(id, v.service.Tiers)
	case keymap.Matches(k, v.keymap.Select):
		state, ok := v.controller.State(id)
		if !ok {
			return v, nil
		}
		return v, v.selectTier(state.CurrentIndex)
	case keymap.Matches(k, v.keymap.Indicator):
		if index, ok := keymap.IndicatorIndex(k); ok {
			return v, v.selectTier(index)
		}
	}
	return v, nil
}

// selectTier commits a tier and returns a command recording it.
func (v *View) selectTier(index int) tea.Cmd {
	sel, ok := v.controller.SelectTier(v.service.ID, index)
	if !ok {
		return nil
	}

	booking := v.booking
	ctx := v.ctx
	return func() tea.Msg {
		if booking == nil {
			return messages.TierSelected{Selection: sel}
		}
		choice, err := booking.Record(ctx, sel)
		return messages.TierSelected{Selection: sel, Choice: choice, Err: err}
	}
}

// View renders the carousel.
func (v *View) View() string {
	var b strings.Builder

	if v.service == nil {
		b.WriteString(v.styles.Muted.Render("No service selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(v.service.Name))
	b.WriteString("\n")
	if v.service.Description != "" {
		b.WriteString(v.styles.Muted.Render(v.service.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.service.TierCount() == 0 || v.controller == nil {
		b.WriteString(v.styles.Muted.Render("This service has no tiers yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.renderCards())
	b.WriteString("\n")

	if v.display.ShowIndicators {
		if dots := v.renderIndicators(); dots != "" {
			b.WriteString("\n")
			b.WriteString(dots)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// CardWidth returns the width of a card inside its border for the
// current terminal size.
func (v *View) CardWidth() int {
	border := v.styles.Card.GetHorizontalBorderSize()
	w := (v.width-2*len(cardGap)-4)/3 - border
	return min(max(w, minCardWidth), maxCardWidth)
}

func (v *View) renderCards() string {
	id := v.service.ID
	tiers := v.service.Tiers
	slots := v.controller.RenderableSlots(id, tiers)
	width := v.CardWidth()

	// Every visible card takes the height of the tallest one.
	contents := make(map[int]string, len(slots))
	height := 0
	for _, slot := range slots {
		if slot.Omitted() || slot.Dummy {
			continue
		}
		content := v.cardContent(slot, width)
		contents[slot.Index] = content
		height = max(height, lipgloss.Height(content))
	}

	parts := make([]string, 0, 2*len(slots))
	for _, slot := range slots {
		if slot.Omitted() {
			continue
		}
		var card string
		switch {
		case slot.Placeholder():
			if !v.display.ShowPlaceholders {
				continue
			}
			card = v.placeholder(width, height)
		default:
			card = v.cardStyle(slot).Width(width).Height(height).Render(contents[slot.Index])
		}
		if len(parts) > 0 {
			parts = append(parts, cardGap)
		}
		parts = append(parts, card)
	}

	left, right := "‹", "›"
	if !v.controller.CanGoLeft(id) {
		left = " "
	}
	if !v.controller.CanGoRight(id, tiers) {
		right = " "
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		v.styles.Subtitle.Render(left)+" ", row, " "+v.styles.Subtitle.Render(right))
}

// placeholder renders an invisible card occupying the same cell area as a
// real one.
func (v *View) placeholder(width, height int) string {
	return lipgloss.NewStyle().
		Width(width + v.styles.Card.GetHorizontalBorderSize()).
		Height(height + v.styles.Card.GetVerticalBorderSize()).
		Render("")
}

func (v *View) cardStyle(slot domain.Slot) lipgloss.Style {
	switch {
	case slot.IsSelected:
		return v.styles.SelectedCard
	case slot.Role == domain.RoleCenter:
		return v.styles.FocusedCard
	default:
		return v.styles.Card
	}
}

func (v *View) cardContent(slot domain.Slot, width int) string {
	tier := slot.Tier
	wrap := lipgloss.NewStyle().Width(width - v.styles.Card.GetHorizontalPadding())

	var lines []string
	lines = append(lines, v.styles.Price.Render(tier.Name))

	var badges []string
	if tier.Popular {
		badges = append(badges, v.styles.Badge.Render("POPULAR"))
	}
	if slot.IsSelected {
		badges = append(badges, v.styles.Success.Render("✓ SELECTED"))
	}
	if len(badges) > 0 {
		lines = append(lines, strings.Join(badges, " "))
	}

	price := v.styles.Price.Render(domain.FormatPrice(tier.Price))
	if tier.HasDiscount() {
		price += " " + v.styles.Strike.Render(domain.FormatPrice(tier.OriginalPrice))
		lines = append(lines, price, v.styles.Success.Render("Save "+domain.FormatPrice(tier.Savings())))
	} else {
		lines = append(lines, price)
	}

	if tier.Description != "" {
		lines = append(lines, "", tier.Description)
	}

	features := v.featureNames.Display(tier.Features)
	if len(features) > 0 {
		lines = append(lines, "")
		for _, f := range features {
			lines = append(lines, "• "+f)
		}
	}

	return wrap.Render(strings.Join(lines, "\n"))
}

func (v *View) renderIndicators() string {
	indicators := v.controller.Indicators(v.service.ID, v.service.Tiers)
	if len(indicators) == 0 {
		return ""
	}
	dots := make([]string, len(indicators))
	for i, ind := range indicators {
		if ind.Active {
			dots[i] = v.styles.ActiveDot.Render("●")
		} else {
			dots[i] = v.styles.Dot.Render("○")
		}
	}
	row := strings.Join(dots, " ")
	pad := max((v.width-lipgloss.Width(row))/2, 0)
	return strings.Repeat(" ", pad) + row
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[←/h] prev  [→/l] next  [enter] select  [1-9] pick tier  [r] reload  [esc] back")
}
