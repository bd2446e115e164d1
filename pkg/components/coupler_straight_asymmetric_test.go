package components

import (
	"math"
	"testing"

	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

func TestCouplerStraightAsymmetric(t *testing.T) {
	ctx := cell.NewContext()
	c, err := CouplerStraightAsymmetric(ctx, CouplerStraightAsymmetricOptions{
		Length:   10,
		Gap:      0.27,
		WidthTop: 0.5,
		WidthBot: 1,
	})
	if err != nil {
		t.Fatalf("CouplerStraightAsymmetric: %v", err)
	}

	offset := 0.5*math.Abs(0.5-1) + 0.27 + 0.5

	// Renaming walks clockwise from west: the raised top straight first,
	// then down the east side, ending at the bottom-west port.
	cases := []struct {
		name        string
		pos         geom.Point
		orientation float64
		width       float64
	}{
		{"o1", geom.Pt(0, offset), 180, 0.5},
		{"o2", geom.Pt(10, offset), 0, 0.5},
		{"o3", geom.Pt(10, 0), 0, 1},
		{"o4", geom.Pt(0, 0), 180, 1},
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

	for _, p := range c.Ports() {
		if !geom.Close(p.Position.X, 0) && !geom.Close(p.Position.X, 10) {
			t.Errorf("port %s at x = %g, want 0 or 10", p.Name, p.Position.X)
		}
	}
}

func TestCouplerStraightAsymmetricSharesStraights(t *testing.T) {
	ctx := cell.NewContext()
	c, err := CouplerStraightAsymmetric(ctx, CouplerStraightAsymmetricOptions{})
	if err != nil {
		t.Fatalf("CouplerStraightAsymmetric: %v", err)
	}
	refs := c.References()
	if len(refs) != 2 {
		t.Fatalf("references = %d, want 2", len(refs))
	}
	top, err := Straight(ctx, StraightOptions{Length: 10, Width: 0.5, CrossSection: "strip"})
	if err != nil {
		t.Fatalf("Straight: %v", err)
	}
	if refs[0].Component() != top {
		t.Error("top straight is not the cached component")
	}
}
