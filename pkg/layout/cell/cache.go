package cell

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/observability"
)

// BuildFunc constructs the builder for one cell. It must be pure in the
// key's parameters: given the same key it must describe the same cell.
// The cache finalizes the returned builder itself.
type BuildFunc func() (*layout.Builder, error)

// Cache memoizes frozen components by key. A build runs at most once per
// key process-wide; concurrent requests for the same key wait for that
// single build and then share its result. Entries live for the process
// run; there is no eviction.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*layout.Component
	group   singleflight.Group
}

// NewCache returns an empty cell cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]*layout.Component)}
}

// GetOrBuild returns the frozen component for key, building it on first
// use. The builder returned by build is stamped with the key's canonical
// name and finalized before it is stored. Build errors are returned to
// every waiting caller and never cached, so the key stays open for retry.
func (c *Cache) GetOrBuild(key Key, build BuildFunc) (*layout.Component, error) {
	if key.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "cannot build with a zero key")
	}
	ctx := context.Background()

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		observability.Cache().OnCacheHit(ctx, "cell")
		return cached, nil
	}
	observability.Cache().OnCacheMiss(ctx, "cell")

	v, err, _ := c.group.Do(key.digest, func() (any, error) {
		// A caller that lost the race may enter the flight after the
		// winner stored the entry; re-check before building.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		observability.Build().OnBuildStart(ctx, key.Name())
		start := time.Now()
		comp, err := c.runBuild(key, build)
		observability.Build().OnBuildComplete(ctx, key.Name(), time.Since(start), err)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if prev, exists := c.entries[key]; exists && prev != comp {
			c.mu.Unlock()
			return nil, errors.New(errors.ErrCodeCacheConsistency,
				"cell %s rebuilt with a different result; builds must be pure in their parameters", key)
		}
		c.entries[key] = comp
		c.mu.Unlock()
		return comp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*layout.Component), nil
}

func (c *Cache) runBuild(key Key, build BuildFunc) (*layout.Component, error) {
	b, err := build()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New(errors.ErrCodeInternal, "build for %s returned no builder", key)
	}
	b.SetName(key.Name())
	b.SetKey(key.Digest())
	return b.Finalize()
}

// Get returns the cached component for key without building.
func (c *Cache) Get(key Key) (*layout.Component, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	comp, ok := c.entries[key]
	return comp, ok
}

// Len returns the number of cached cells.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached cell. Test support; builds already in flight
// will repopulate the fresh table.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*layout.Component)
}
