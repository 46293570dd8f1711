// Package bookings provides the recorded tier choices view for the TUI.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

var errNoBookingService = errors.New("booking service not available")

// View lists recorded booking choices, newest first.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	booking driving.BookingService
	ctx     context.Context

	choices  []domain.BookingChoice
	names    map[string]string // "serviceID/tierID" -> "Service · Tier"
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new bookings view.
func NewView(s *styles.Styles, booking driving.BookingService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		booking: booking,
		ctx:     context.Background(),
		names:   make(map[string]string),
	}
}

// SetContext sets the context for service calls.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// SetServices lets the view show service and tier names instead of ids.
func (v *View) SetServices(services []domain.Service) {
	names := make(map[string]string)
	for i := range services {
		svc := &services[i]
		for _, tier := range svc.Tiers {
			names[svc.ID+"/"+tier.ID] = svc.Name + " · " + tier.Name
		}
	}
	v.names = names
}

// Init loads the recorded choices.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	booking := v.booking
	ctx := v.ctx
	return func() tea.Msg {
		if booking == nil {
			return messages.BookingsLoaded{Err: errNoBookingService}
		}
		choices, err := booking.List(ctx)
		return messages.BookingsLoaded{Choices: choices, Err: err}
	}
}

func (v *View) clear() tea.Cmd {
	booking := v.booking
	ctx := v.ctx
	return func() tea.Msg {
		if booking == nil {
			return messages.BookingsCleared{Err: errNoBookingService}
		}
		return messages.BookingsCleared{Err: booking.Clear(ctx)}
	}
}

// Update handles messages for the bookings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.BookingsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.choices = msg.Choices
			if v.selected >= len(v.choices) {
				v.selected = max(len(v.choices)-1, 0)
			}
		}
		return v, nil

	case messages.BookingsCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.choices)-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keymap.Reload):
			v.loading = true
			return v, v.load()
		case keymap.Matches(k, v.keymap.Clear):
			return v, v.clear()
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the bookings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Bookings"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading bookings..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.choices) == 0:
		b.WriteString(v.styles.Muted.Render("No tiers selected yet."))
	default:
		for i, c := range v.choices {
			label, ok := v.names[c.ServiceID+"/"+c.TierID]
			if !ok {
				label = c.ServiceID + " · " + c.TierID
			}
			when := c.SelectedAt.Local().Format(time.DateTime)
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> " + label))
			} else {
				b.WriteString("  " + v.styles.Normal.Render(label))
			}
			b.WriteString("  " + v.styles.Muted.Render(when))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] reload  [x] clear  [esc] back  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Choices returns the listed choices.
func (v *View) Choices() []domain.BookingChoice {
	return v.choices
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
