package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/coldshrine/calorista/internal/domain"
)

// entryKeyPrefix is the exact key scheme for per-day entries. Keys are
// case-sensitive, colon-separated, no surrounding whitespace.
const entryKeyPrefix = "food_entries:"

func entryKey(date string) string {
	return entryKeyPrefix + date
}

// RedisEntryCache stores per-day entries in Redis as JSON text. Writes fully
// overwrite and entries carry no TTL: synced history is durable data, not a
// hot cache.
type RedisEntryCache struct {
	client *redis.Client
	logger zerolog.Logger
}

var _ domain.EntryCache = (*RedisEntryCache)(nil)

// NewRedisEntryCache connects to the Redis instance described by a URL like
// redis://localhost:6379/0.
func NewRedisEntryCache(redisURL string, logger zerolog.Logger) (*RedisEntryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisEntryCache{
		client: redis.NewClient(opts),
		logger: logger.With().Str("component", "redis-cache").Logger(),
	}, nil
}

// WriteDay serializes the payload and stores it under food_entries:<date>.
func (c *RedisEntryCache) WriteDay(ctx context.Context, date string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode entries for %s: %w", date, err)
	}
	if err := c.client.Set(ctx, entryKey(date), data, 0).Err(); err != nil {
		return fmt.Errorf("cache write %s: %w", date, err)
	}
	c.logger.Debug().Str("date", date).Int("bytes", len(data)).Msg("cached day entries")
	return nil
}

// ReadDay fetches and deserializes one day's entries. A missing key is
// reported as found=false with a nil error.
func (c *RedisEntryCache) ReadDay(ctx context.Context, date string) (any, bool, error) {
	data, err := c.client.Get(ctx, entryKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache read %s: %w", date, err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("decode cached entries for %s: %w", date, err)
	}
	return payload, true, nil
}

// Ping verifies the connection.
func (c *RedisEntryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisEntryCache) Close() error {
	return c.client.Close()
}
