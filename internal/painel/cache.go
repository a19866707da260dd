package painel

import (
	"context"
	"sync"
	"time"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a loaded SheetSet is served before refetching.
const DefaultCacheTTL = 60 * time.Second

type FetchFunc func(ctx context.Context) (*types.SheetSet, error)

type cacheEntry struct {
	set       *types.SheetSet
	expiresAt time.Time
}

// Cache keeps one SheetSet per source key for a fixed TTL. Concurrent misses
// on the same key share a single fetch. Failed fetches are not stored.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the live entry for key, if any.
func (c *Cache) Get(key string) (*types.SheetSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.set, true
}

func (c *Cache) put(key string, set *types.SheetSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{set: set, expiresAt: c.now().Add(c.ttl)}
}

// GetOrFetch returns the cached SheetSet for key, calling fetch when the entry
// is missing or expired. The shared fetch runs on a context detached from any
// single caller, so one caller giving up does not fail the others; each caller
// stops waiting when its own ctx is done.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) (*types.SheetSet, error) {
	if set, ok := c.Get(key); ok {
		return set, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// another caller may have filled the entry while we waited
		if set, ok := c.Get(key); ok {
			return set, nil
		}
		set, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.put(key, set)
		return set, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*types.SheetSet), nil
	}
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
