package artifact

import (
	"context"
	"strings"
	"time"

	"github.com/maskforge/maskforge/pkg/observability"
)

// Instrumented wraps a Cache and reports hits, misses, and writes through
// the observability hooks. The key namespace (text before the first ':')
// becomes the hook key type, so netlist and render traffic count
// separately.
type Instrumented struct {
	inner Cache
}

// NewInstrumented wraps a cache with hook emission. A nil inner cache is
// replaced by a NullCache.
func NewInstrumented(inner Cache) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Instrumented{inner: inner}
}

// Get retrieves a value and records the hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, hit, err
}

// Set stores a value and records the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// Delete removes a value from the underlying cache.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the underlying cache.
func (c *Instrumented) Close() error {
	return c.inner.Close()
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "artifact"
}

var _ Cache = (*Instrumented)(nil)
