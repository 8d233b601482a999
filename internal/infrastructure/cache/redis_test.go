package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisEntryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisEntryCache("redis://"+mr.Addr(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewRedisEntryCache_BadURL(t *testing.T) {
	_, err := NewRedisEntryCache("not-a-url", zerolog.Nop())
	assert.Error(t, err)
}

func TestRedisEntryCache_RoundTrip(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	payload := map[string]any{
		"food_entries": map[string]any{
			"food_entry": map[string]any{"food_entry_name": "Salmon", "calories": "410"},
		},
	}
	require.NoError(t, c.WriteDay(ctx, "2025-03-10", payload))

	// the exact key scheme is part of the contract
	assert.True(t, mr.Exists("food_entries:2025-03-10"))

	got, found, err := c.ReadDay(ctx, "2025-03-10")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]any(payload), got)
}

func TestRedisEntryCache_Miss(t *testing.T) {
	c, _ := newRedisCache(t)

	got, found, err := c.ReadDay(context.Background(), "1999-12-31")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestRedisEntryCache_Overwrite(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.WriteDay(ctx, "2025-03-10", map[string]any{"v": "old"}))
	require.NoError(t, c.WriteDay(ctx, "2025-03-10", map[string]any{"v": "new"}))

	got, found, err := c.ReadDay(ctx, "2025-03-10")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]any{"v": "new"}, got)
}

func TestRedisEntryCache_NoTTL(t *testing.T) {
	c, mr := newRedisCache(t)

	require.NoError(t, c.WriteDay(context.Background(), "2025-03-10", map[string]any{}))
	assert.Zero(t, mr.TTL("food_entries:2025-03-10"))
}

func TestRedisEntryCache_Ping(t *testing.T) {
	c, _ := newRedisCache(t)
	assert.NoError(t, c.Ping(context.Background()))
}
