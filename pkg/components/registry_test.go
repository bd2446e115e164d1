package components

import (
	"reflect"
	"strings"
	"testing"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

func TestDefaultRegistryNames(t *testing.T) {
	got := DefaultRegistry().Names()
	want := []string{
		"bend_circular",
		"bend_s",
		"compass",
		"contra_dc",
		"coupler_straight_asymmetric",
		"rectangle",
		"straight",
		"taper",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistryBuild(t *testing.T) {
	ctx := cell.NewContext()
	reg := DefaultRegistry()

	c, err := reg.Build(ctx, "rectangle", map[string]any{"width": 2.0, "height": 1.0})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b := c.Bounds()
	if !geom.Close(b.Width(), 2) || !geom.Close(b.Height(), 1) {
		t.Errorf("bounds = %g x %g, want 2 x 1", b.Width(), b.Height())
	}

	// Loose parameters and typed options share one cache entry.
	direct, err := Rectangle(ctx, RectangleOptions{Width: 2, Height: 1})
	if err != nil {
		t.Fatalf("Rectangle: %v", err)
	}
	if c != direct {
		t.Error("registry build and direct call produced distinct components")
	}
}

func TestRegistryBuildRejectsUnknownParameter(t *testing.T) {
	ctx := cell.NewContext()
	_, err := DefaultRegistry().Build(ctx, "straight", map[string]any{"lenght": 10.0})
	if !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("error = %v, want ErrCodeInvalidParameter", err)
	}
}

func TestRegistryUnknownFactory(t *testing.T) {
	_, err := DefaultRegistry().Get("ring")
	if !errors.Is(err, errors.ErrCodeUnknownFactory) {
		t.Fatalf("error = %v, want ErrCodeUnknownFactory", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "available") {
		t.Errorf("error %q does not list the available factories", msg)
	}
}

func TestRegistryKey(t *testing.T) {
	ctx := cell.NewContext()
	reg := DefaultRegistry()

	key, err := reg.Key("straight", map[string]any{"length": 25.0})
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if key.Factory() != "straight" {
		t.Errorf("factory = %q, want straight", key.Factory())
	}

	// The precomputed key names the same cell a build produces.
	c, err := reg.Build(ctx, "straight", map[string]any{"length": 25.0})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Name() != key.Name() {
		t.Errorf("component %q, key names %q", c.Name(), key.Name())
	}
	if cached, ok := ctx.Cache.Get(key); !ok || cached != c {
		t.Error("key does not address the cached component")
	}

	// Defaulted and explicit parameters that agree share a key.
	dflt, err := reg.Key("straight", nil)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	expl, err := reg.Key("straight", map[string]any{"length": 10.0, "cross_section": "strip"})
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if dflt.Digest() != expl.Digest() {
		t.Error("defaulted and explicit parameters disagree on the digest")
	}
}

func TestRegistryKeyErrors(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := reg.Key("ring", nil); !errors.Is(err, errors.ErrCodeUnknownFactory) {
		t.Errorf("error = %v, want ErrCodeUnknownFactory", err)
	}
	if _, err := reg.Key("straight", map[string]any{"lenght": 10.0}); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("error = %v, want ErrCodeInvalidParameter", err)
	}
	if _, err := reg.Key("straight", map[string]any{"length": -1.0}); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("error = %v, want ErrCodeInvalidParameter", err)
	}
}

func TestFactoryDefaults(t *testing.T) {
	f, err := DefaultRegistry().Get("straight")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	d, ok := f.Defaults().(StraightOptions)
	if !ok {
		t.Fatalf("Defaults() = %T, want StraightOptions", f.Defaults())
	}
	if d.Length != 10 || d.CrossSection != "strip" {
		t.Errorf("defaults = %+v", d)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Factory{Name: "straight", Description: "first"})
	reg.Register(Factory{Name: "straight", Description: "second"})
	f, err := reg.Get("straight")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f.Description != "second" {
		t.Errorf("description = %q, want %q", f.Description, "second")
	}
	if got := len(reg.Names()); got != 1 {
		t.Errorf("names = %d, want 1", got)
	}
}
