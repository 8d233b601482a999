package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/coldshrine/calorista/internal/domain"
)

// MemoryEntryCache is a thread-safe in-memory entry store. Values are held as
// serialized JSON so reads decode exactly like Redis reads; it backs tests
// and the no-Redis local setup.
type MemoryEntryCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ domain.EntryCache = (*MemoryEntryCache)(nil)

// NewMemoryEntryCache creates an empty in-memory entry store.
func NewMemoryEntryCache() *MemoryEntryCache {
	return &MemoryEntryCache{data: make(map[string][]byte)}
}

// WriteDay serializes the payload and stores it under food_entries:<date>,
// overwriting any previous value.
func (c *MemoryEntryCache) WriteDay(ctx context.Context, date string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode entries for %s: %w", date, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[entryKey(date)] = data
	return nil
}

// ReadDay fetches and deserializes one day's entries. A missing date is
// reported as found=false with a nil error.
func (c *MemoryEntryCache) ReadDay(ctx context.Context, date string) (any, bool, error) {
	c.mu.RLock()
	data, ok := c.data[entryKey(date)]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("decode cached entries for %s: %w", date, err)
	}
	return payload, true, nil
}

// Size returns the number of cached days (for debugging/monitoring).
func (c *MemoryEntryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear removes all cached days.
func (c *MemoryEntryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
}
