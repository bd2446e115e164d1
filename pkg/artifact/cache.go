package artifact

import (
	"context"
	"time"
)

// Artifact lifetimes. Keys are content-addressed digests, so a stale entry
// is never wrong; the TTLs only bound the growth of shared backends.
const (
	TTLNetlist = 30 * 24 * time.Hour
	TTLRender  = 7 * 24 * time.Hour
)

// Cache stores opaque artifact bytes under string keys.
//
// Get reports a miss through its second return value, not an error; errors
// are reserved for backend failures. A TTL of 0 on Set means the entry
// never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
