package components

import (
	"math"
	"testing"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// mustPort fetches a port or fails the test.
func mustPort(t *testing.T, c *layout.Component, name string) layout.Port {
	t.Helper()
	p, err := c.Port(name)
	if err != nil {
		t.Fatalf("Port(%q): %v", name, err)
	}
	return p
}

// near reports whether two floats agree within tol.
func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestResolveCrossSection(t *testing.T) {
	ctx := cell.NewContext()

	t.Run("registered profile", func(t *testing.T) {
		xs, err := resolveCrossSection(ctx, "strip", 0)
		if err != nil {
			t.Fatalf("resolveCrossSection: %v", err)
		}
		if xs.Width != 0.5 {
			t.Errorf("width = %g, want 0.5", xs.Width)
		}
	})

	t.Run("width override", func(t *testing.T) {
		xs, err := resolveCrossSection(ctx, "strip", 0.45)
		if err != nil {
			t.Fatalf("resolveCrossSection: %v", err)
		}
		if xs.Width != 0.45 {
			t.Errorf("width = %g, want 0.45", xs.Width)
		}
		if xs.Layer.Number != 1 {
			t.Errorf("layer = %s, want 1/0", xs.Layer)
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := resolveCrossSection(ctx, "nitride", 0)
		if !errors.Is(err, errors.ErrCodeUnknownProfile) {
			t.Errorf("error = %v, want ErrCodeUnknownProfile", err)
		}
	})
}
