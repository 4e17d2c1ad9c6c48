package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// MemoryCache keeps JSON-encoded entries in process. Values round-trip through
// JSON exactly as they do with Redis.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{}
	gens    map[string]uint64
	now     func() time.Time
}

var _ TaggedCache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: map[string]memoryEntry{},
		tags:    map[string]map[string]struct{}{},
		gens:    map[string]uint64{},
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string, value any) error {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return ErrMiss
	}
	if err := json.Unmarshal(e.raw, value); err != nil {
		return fmt.Errorf("unmarshal cache value: %w", err)
	}
	return nil
}

func (c *MemoryCache) Save(_ context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{raw: raw}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e

	for _, tag := range tags {
		set, ok := c.tags[tag]
		if !ok {
			set = map[string]struct{}{}
			c.tags[tag] = set
		}
		set[key] = struct{}{}
	}
	return nil
}

func (c *MemoryCache) InvalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[tag]++
	for key := range c.tags[tag] {
		delete(c.entries, key)
	}
	delete(c.tags, tag)
	return nil
}

func (c *MemoryCache) Generation(_ context.Context, tag string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[tag], nil
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
