// Package services provides the service picker view for the TUI.
package services

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// View lists the catalog's services and lets the user pick one.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	carousel driving.CarouselController

	services []domain.Service
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new services view. The carousel is used to show
// which tier each service has committed; it may be nil.
func NewView(s *styles.Styles, carousel driving.CarouselController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		carousel: carousel,
		loading:  true,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the services view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CatalogLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.SetServices(msg.Services)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.services)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if v.selected < len(v.services) {
			id := v.services[v.selected].ID
			return v, func() tea.Msg {
				return messages.ServiceSelected{ServiceID: id}
			}
		}
	case keymap.Matches(k, v.keymap.Reload):
		v.loading = true
		return v, func() tea.Msg {
			return messages.ReloadRequested{}
		}
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// View renders the services view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Services"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.services) == 0:
		b.WriteString(v.styles.Muted.Render("Loading services..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.services) == 0:
		b.WriteString(v.styles.Muted.Render("No services in the catalog."))
	default:
		for i := range v.services {
			b.WriteString(v.renderService(i, &v.services[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] tiers  [r] reload  [esc] back  [q] quit"))
	return b.String()
}

func (v *View) renderService(index int, svc *domain.Service) string {
	name := svc.Name
	if name == "" {
		name = svc.ID
	}

	detail := fmt.Sprintf("%d tiers", svc.TierCount())
	if svc.TierCount() > 0 {
		detail += " from " + domain.FormatPrice(svc.StartingPrice())
	}
	if chosen := v.chosenTier(svc); chosen != "" {
		detail += "  ✓ " + chosen
	}

	if index == v.selected {
		return v.styles.Selected.Render("> "+name) + "  " + v.styles.Normal.Render(detail)
	}
	return "  " + v.styles.Normal.Render(name) + "  " + v.styles.Muted.Render(detail)
}

func (v *View) chosenTier(svc *domain.Service) string {
	if v.carousel == nil {
		return ""
	}
	state, ok := v.carousel.State(svc.ID)
	if !ok || !state.HasSelection() {
		return ""
	}
	for _, tier := range svc.Tiers {
		if tier.ID == state.SelectedTierID {
			return tier.Name
		}
	}
	return ""
}

// SetServices replaces the listed services, keeping the cursor in range.
func (v *View) SetServices(services []domain.Service) {
	v.services = services
	v.loading = false
	v.err = nil
	if v.selected >= len(services) {
		v.selected = max(len(services)-1, 0)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Services returns the listed services.
func (v *View) Services() []domain.Service {
	return v.services
}

// SelectedIndex returns the cursor position.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
