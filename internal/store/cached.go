package store

import (
	"context"
	"sync"
	"time"
)

// Cached wraps a Store with a TTL read cache. Reads that hit the cache
// skip the backing store; writes and removals update it in place so a
// single instance always reads its own writes.
type Cached struct {
	inner Store
	ttl   time.Duration

	mu    sync.Mutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	ok        bool
	expiresAt time.Time
}

// NewCached decorates inner with a read cache. A non-positive ttl falls
// back to one minute.
func NewCached(inner Store, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cached{
		inner: inner,
		ttl:   ttl,
		items: make(map[string]cacheEntry),
	}
}

func (c *Cached) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	entry, hit := c.items[key]
	c.mu.Unlock()

	if hit && time.Now().Before(entry.expiresAt) {
		return entry.value, entry.ok, nil
	}

	value, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.store(key, value, ok)
	return value, ok, nil
}

func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		return err
	}
	c.store(key, value, true)
	return nil
}

func (c *Cached) Remove(ctx context.Context, key string) error {
	if err := c.inner.Remove(ctx, key); err != nil {
		return err
	}
	c.store(key, "", false)
	return nil
}

// Invalidate drops the cached entries for the given keys. Used when
// another instance announces it rewrote them.
func (c *Cached) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
}

func (c *Cached) Close() error {
	return c.inner.Close()
}

func (c *Cached) store(key, value string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{
		value:     value,
		ok:        ok,
		expiresAt: time.Now().Add(c.ttl),
	}
}
