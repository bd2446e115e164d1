package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maskforge/maskforge/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "artifacts"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "svg:abc")
	if err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "svg:abc", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, hit %v, want <svg/> hit", data, hit)
	}

	// Delete removes the entry; deleting again is not an error
	if err := c.Delete(ctx, "svg:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "svg:abc"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "svg:abc"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("expired entry: hit %v, err %v, want miss", hit, err)
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	path := c.(*FileCache).path("key")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("corrupt entry: hit %v, err %v, want silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry file should be removed")
	}
}

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Namespaces separate artifact kinds for the same digest
	nk := k.NetlistKey("digest123")
	sk := k.SVGKey("digest123", 20)
	dk := k.DOTKey("digest123", false)
	gk := k.GraphKey("digest123", false)
	if !strings.HasPrefix(nk, "netlist:") || !strings.HasPrefix(sk, "svg:") ||
		!strings.HasPrefix(dk, "dot:") || !strings.HasPrefix(gk, "graph:") {
		t.Errorf("unexpected namespaces: %s %s %s %s", nk, sk, dk, gk)
	}

	// Different digests produce different keys
	if k.SVGKey("digest123", 20) == k.SVGKey("digest456", 20) {
		t.Error("Different digests should produce different keys")
	}

	// Render options that change the bytes change the key
	if k.SVGKey("digest123", 20) == k.SVGKey("digest123", 40) {
		t.Error("Different scales should produce different keys")
	}
	if k.DOTKey("digest123", false) == k.DOTKey("digest123", true) {
		t.Error("Detailed diagrams should key separately")
	}
	if k.GraphKey("digest123", false) == k.GraphKey("digest123", true) {
		t.Error("Detailed rendered diagrams should key separately")
	}

	// Same inputs are stable
	if k.SVGKey("digest123", 20) != k.SVGKey("digest123", 20) {
		t.Error("Keys should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "team-a:")

	for _, key := range []string{
		scoped.NetlistKey("d1"),
		scoped.SVGKey("d1", 20),
		scoped.DOTKey("d1", true),
		scoped.GraphKey("d1", true),
	} {
		if !strings.HasPrefix(key, "team-a:") {
			t.Errorf("key should be prefixed: %s", key)
		}
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.SVGKey("d1", 20); !strings.HasPrefix(key, "prefix:svg:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string)           { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(ctx context.Context, keyType string)          { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) { h.sets++ }

func TestInstrumentedCache(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	c := NewInstrumented(inner)
	defer c.Close()
	ctx := context.Background()

	if _, hit, _ := c.Get(ctx, "netlist:abc"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "netlist:abc", []byte("data"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "netlist:abc"); !hit {
		t.Fatal("stored entry should hit")
	}

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets, want 1 each", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestInstrumentedNilInner(t *testing.T) {
	c := NewInstrumented(nil)
	if _, hit, err := c.Get(context.Background(), "k"); hit || err != nil {
		t.Errorf("nil inner should behave like NullCache, got hit=%v err=%v", hit, err)
	}
}

func TestKeyType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"netlist:abc", "netlist"},
		{"svg:1f2e", "svg"},
		{"team-a:svg:1f2e", "team-a"},
		{"plain", "artifact"},
		{":odd", "artifact"},
	}

	for _, tt := range tests {
		if got := keyType(tt.key); got != tt.want {
			t.Errorf("keyType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
