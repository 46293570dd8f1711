package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

func TestBookingStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "1", ServiceID: "wash", TierID: "a", SelectedAt: base}))
	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "2", ServiceID: "wash", TierID: "b", SelectedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "3", ServiceID: "lawn", TierID: "c", SelectedAt: base.Add(-time.Minute)}))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"2", "1", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	latest, err := store.Latest(ctx, "wash")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.TierID)

	_, err = store.Latest(ctx, "maid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingStore_SameTimestampPrefersLastWrite(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "1", ServiceID: "wash", TierID: "a", SelectedAt: at}))
	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "2", ServiceID: "wash", TierID: "b", SelectedAt: at}))

	latest, err := store.Latest(ctx, "wash")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.TierID)
}

func TestBookingStore_SaveErrors(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	assert.ErrorIs(t, store.Save(ctx, domain.BookingChoice{}), domain.ErrInvalidInput)

	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "1"}))
	assert.ErrorIs(t, store.Save(ctx, domain.BookingChoice{ID: "1"}), domain.ErrAlreadyExists)
}

func TestBookingStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	require.NoError(t, store.Save(ctx, domain.BookingChoice{ID: "1", ServiceID: "wash"}))

	require.NoError(t, store.Clear(ctx))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
