package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewServices, "services"},
		{ViewCarousel, "carousel"},
		{ViewBookings, "bookings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewServices, ViewCarousel, ViewBookings, ViewHelp}

	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view type %s", v)
		seen[v] = true
	}
}

func TestTierSelected(t *testing.T) {
	t.Run("with choice", func(t *testing.T) {
		sel := domain.Selection{ServiceID: "svc-1", TierID: "t1", TierIndex: 0}
		msg := TierSelected{
			Selection: sel,
			Choice:    &domain.BookingChoice{ID: "b-1", ServiceID: "svc-1", TierID: "t1"},
		}

		assert.True(t, msg.Choice.Matches(msg.Selection))
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := TierSelected{Err: errors.New("store offline")}

		assert.Nil(t, msg.Choice)
		assert.EqualError(t, msg.Err, "store offline")
	})
}

func TestCatalogLoaded(t *testing.T) {
	msg := CatalogLoaded{
		Services:     []domain.Service{{ID: "svc-1"}},
		FeatureNames: domain.FeatureNames{"wax": "Hand wax"},
	}

	assert.Len(t, msg.Services, 1)
	assert.Equal(t, []string{"Hand wax"}, msg.FeatureNames.Display([]string{"wax"}))
}
