package bookings

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tierdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/services"
)

func newBookingService(t *testing.T, selections ...domain.Selection) *services.BookingService {
	t.Helper()
	svc := services.NewBookingService(memory.NewBookingStore())
	for _, sel := range selections {
		_, err := svc.Record(context.Background(), sel)
		require.NoError(t, err)
	}
	return svc
}

// run executes cmd and feeds the resulting message back into the view.
func run(v *View, cmd tea.Cmd) {
	for cmd != nil {
		_, cmd = v.Update(cmd())
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init_LoadsChoices(t *testing.T) {
	booking := newBookingService(t,
		domain.Selection{ServiceID: "full-detail", TierID: "premium", TierIndex: 1},
		domain.Selection{ServiceID: "lawn", TierID: "mow", TierIndex: 0},
	)
	view := NewView(nil, booking)
	view.SetServices([]domain.Service{{
		ID:    "full-detail",
		Name:  "Full Detail",
		Tiers: []domain.Tier{{ID: "premium", Name: "Premium"}},
	}})

	cmd := view.Init()
	assert.Contains(t, view.View(), "Loading")
	run(view, cmd)

	require.NoError(t, view.Err())
	assert.Len(t, view.Choices(), 2)
	output := view.View()
	assert.Contains(t, output, "Full Detail · Premium")
	assert.Contains(t, output, "lawn · mow", "unknown tiers fall back to ids")
}

func TestView_Init_NoService(t *testing.T) {
	view := NewView(nil, nil)

	run(view, view.Init())

	assert.ErrorIs(t, view.Err(), errNoBookingService)
	assert.Contains(t, view.View(), "booking service not available")
}

func TestView_Empty(t *testing.T) {
	view := NewView(nil, newBookingService(t))

	run(view, view.Init())

	assert.Contains(t, view.View(), "No tiers selected yet")
}

func TestView_ClearKey(t *testing.T) {
	booking := newBookingService(t, domain.Selection{ServiceID: "lawn", TierID: "mow"})
	view := NewView(nil, booking)
	run(view, view.Init())
	require.Len(t, view.Choices(), 1)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	run(view, cmd)

	assert.Empty(t, view.Choices())
	list, err := booking.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestView_Navigation(t *testing.T) {
	booking := newBookingService(t,
		domain.Selection{ServiceID: "a", TierID: "1"},
		domain.Selection{ServiceID: "b", TierID: "2"},
	)
	view := NewView(nil, booking)
	run(view, view.Init())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.selected)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.selected)
}

func TestView_Back(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
