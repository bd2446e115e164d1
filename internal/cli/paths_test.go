package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	os.Unsetenv("XDG_DATA_HOME")

	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".local", "share", appName)
	if dir != want {
		t.Errorf("dataDir() = %q, want %q", dir, want)
	}
}

func TestDataDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/custom-data")

	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-data", appName)
	if dir != want {
		t.Errorf("dataDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFlagOverride(t *testing.T) {
	c := New(io.Discard)
	c.cacheLoc = "/tmp/explicit"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/explicit" {
		t.Errorf("cacheDir() = %q, want the flag value", dir)
	}
}

func TestIsURL(t *testing.T) {
	if !isURL("https://example.com/kit.toml") || !isURL("http://example.com/kit.toml") {
		t.Error("http(s) URLs should be detected")
	}
	if isURL("kit.toml") || isURL("/abs/path/kit.toml") {
		t.Error("file paths should not be detected as URLs")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("MASKFORGE_TEST_ENVOR", "from-env")
	if got := envOr("MASKFORGE_TEST_ENVOR", "fallback"); got != "from-env" {
		t.Errorf("envOr = %q, want env value", got)
	}
	if got := envOr("MASKFORGE_TEST_ENVOR_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envOr = %q, want fallback", got)
	}
}
