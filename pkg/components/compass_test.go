package components

import (
	"strings"
	"testing"

	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

func TestCompassPorts(t *testing.T) {
	ctx := cell.NewContext()
	c, err := Compass(ctx, CompassOptions{Width: 4, Height: 2})
	if err != nil {
		t.Fatalf("Compass: %v", err)
	}
	cases := []struct {
		name        string
		pos         geom.Point
		orientation float64
		width       float64
	}{
		{"e1", geom.Pt(-2, 0), 180, 2},
		{"e2", geom.Pt(0, 1), 90, 4},
		{"e3", geom.Pt(2, 0), 0, 2},
		{"e4", geom.Pt(0, -1), 270, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustPort(t, c, tc.name)
			if !geom.ClosePoints(p.Position, tc.pos) {
				t.Errorf("position = %v, want %v", p.Position, tc.pos)
			}
			if !geom.CloseAngles(p.Orientation, tc.orientation) {
				t.Errorf("orientation = %g, want %g", p.Orientation, tc.orientation)
			}
			if !geom.Close(p.Width, tc.width) {
				t.Errorf("width = %g, want %g", p.Width, tc.width)
			}
		})
	}
}

func TestCompassPrefix(t *testing.T) {
	ctx := cell.NewContext()
	c, err := Compass(ctx, CompassOptions{Prefix: "pad"})
	if err != nil {
		t.Fatalf("Compass: %v", err)
	}
	for _, name := range []string{"pad1", "pad2", "pad3", "pad4"} {
		if !c.HasPort(name) {
			t.Errorf("missing port %q, have %v", name, c.PortNames())
		}
	}
}

func TestCompassReferencesRectangle(t *testing.T) {
	ctx := cell.NewContext()
	c, err := Compass(ctx, CompassOptions{})
	if err != nil {
		t.Fatalf("Compass: %v", err)
	}
	refs := c.References()
	if len(refs) != 1 {
		t.Fatalf("references = %d, want 1", len(refs))
	}
	if child := refs[0].Component().Name(); !strings.HasPrefix(child, "rectangle_") {
		t.Errorf("child = %q, want rectangle_ prefix", child)
	}
	// The child is the memoized centered rectangle, shared with direct calls.
	rect, err := Rectangle(ctx, RectangleOptions{Width: 4, Height: 2, Layer: "wg", Centered: true})
	if err != nil {
		t.Fatalf("Rectangle: %v", err)
	}
	if refs[0].Component() != rect {
		t.Error("compass child is not the cached rectangle")
	}
}
