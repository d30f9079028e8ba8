package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zapis/internal/availability"
	"zapis/internal/domain"
)

func newTestCache(t *testing.T) *SlotCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSlotCache(client)
}

func TestSlotCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	result := availability.Result{
		Slots: []availability.Slot{
			{Start: domain.TimeOfDay(9 * 60), Display: "9:00 AM"},
			{Start: domain.TimeOfDay(10 * 60), Display: "10:00 AM"},
		},
	}

	require.NoError(t, c.PutSlots(ctx, 1, 0, 5, nil, "2026-09-14", result))

	got, err := c.GetSlots(ctx, 1, 0, 5, nil, "2026-09-14")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, result, *got)
}

func TestSlotCache_MissReturnsNil(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	got, err := c.GetSlots(ctx, 1, 0, 5, nil, "2026-09-14")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSlotCache_GenerationInvalidates(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	gen, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, gen)

	result := availability.Result{
		Slots: []availability.Slot{{Start: domain.TimeOfDay(9 * 60), Display: "9:00 AM"}},
	}
	require.NoError(t, c.PutSlots(ctx, 1, gen, 5, nil, "2026-09-14", result))

	require.NoError(t, c.BumpGeneration(ctx, 1))

	gen, err = c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)

	// под новым поколением старая запись не видна
	got, err := c.GetSlots(ctx, 1, gen, 5, nil, "2026-09-14")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSlotCache_LocationScopesKey(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	locID := int64(3)
	result := availability.Result{
		Slots: []availability.Slot{{Start: domain.TimeOfDay(9 * 60), Display: "9:00 AM"}},
	}
	require.NoError(t, c.PutSlots(ctx, 1, 0, 5, &locID, "2026-09-14", result))

	got, err := c.GetSlots(ctx, 1, 0, 5, nil, "2026-09-14")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = c.GetSlots(ctx, 1, 0, 5, &locID, "2026-09-14")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, result, *got)
}

func TestSlotCache_NilSafe(t *testing.T) {
	ctx := context.Background()

	var c *SlotCache

	gen, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, gen)

	require.NoError(t, c.BumpGeneration(ctx, 1))
	require.NoError(t, c.PutSlots(ctx, 1, 0, 5, nil, "2026-09-14", availability.Result{}))

	got, err := c.GetSlots(ctx, 1, 0, 5, nil, "2026-09-14")
	require.NoError(t, err)
	assert.Nil(t, got)
}
