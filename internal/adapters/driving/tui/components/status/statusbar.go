// Package status provides the status bar shown under every TUI view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateError    State = "error"
	StateBrowsing State = "browsing"
	StateBooked   State = "booked"
)

// Bar shows catalog status on the left and key hints on the right. It
// holds no tea.Model behaviour; the app drives it through setters.
type Bar struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	state        State
	message      string
	serviceCount int
	width        int
}

// NewBar creates a status bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// View renders the bar across the full width.
func (s *Bar) View() string {
	left, right := s.status(), s.hints()

	inner := s.width - s.styles.StatusBar.GetHorizontalPadding()
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading catalog...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateBooked:
		return s.styles.Success.Render(s.message)
	}

	switch s.serviceCount {
	case 0:
		return s.styles.Muted.Render("Ready")
	case 1:
		return s.styles.Normal.Render("1 service")
	default:
		return s.styles.Normal.Render(fmt.Sprintf("%d services", s.serviceCount))
	}
}

func (s *Bar) hints() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateBrowsing || s.state == StateBooked {
		bindings = s.keymap.CarouselHelp()
	}
	return s.styles.Muted.Render(joinHints(bindings))
}

func joinHints(bindings []key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + ": " + b.Help().Desc
	}
	return strings.Join(parts, " | ")
}

// SetState sets the state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the state.
func (s *Bar) State() State { return s.state }

// SetMessage sets the text shown for the error and booked states.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the message.
func (s *Bar) Message() string { return s.message }

// SetServiceCount sets the number of services in the catalog.
func (s *Bar) SetServiceCount(count int) { s.serviceCount = count }

// ServiceCount returns the number of services shown.
func (s *Bar) ServiceCount() int { return s.serviceCount }

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the bar width.
func (s *Bar) Width() int { return s.width }
