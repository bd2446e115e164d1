package kernel

import (
	"math"
	"testing"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/pdk"
)

var (
	wg   = pdk.Layer{Number: 1, Datatype: 0}
	slab = pdk.Layer{Number: 3, Datatype: 0}
	clad = pdk.Layer{Number: 111, Datatype: 0}
)

func TestRectangle(t *testing.T) {
	k := NewSoftware()

	p, err := k.Rectangle(4, 2, wg)
	if err != nil {
		t.Fatalf("Rectangle() error = %v", err)
	}
	if got := p.PolygonCount(); got != 1 {
		t.Errorf("PolygonCount() = %d, want 1", got)
	}
	b := p.Bounds()
	want := geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(4, 2)}
	if !geom.ClosePoints(b.Min, want.Min) || !geom.ClosePoints(b.Max, want.Max) {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
	if layers := p.Layers(); len(layers) != 1 || layers[0] != wg {
		t.Errorf("Layers() = %v, want [%v]", layers, wg)
	}
}

func TestRectangleErrors(t *testing.T) {
	k := NewSoftware()

	tests := []struct {
		name   string
		width  float64
		height float64
	}{
		{"zero width", 0, 2},
		{"negative width", -1, 2},
		{"zero height", 4, 0},
		{"nan width", math.NaN(), 2},
		{"inf height", 4, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := k.Rectangle(tt.width, tt.height, wg)
			if !errors.Is(err, errors.ErrCodeKernel) {
				t.Errorf("Rectangle(%g, %g) error = %v, want kernel error", tt.width, tt.height, err)
			}
		})
	}
}

func TestExtrudePathStraight(t *testing.T) {
	k := NewSoftware()

	path := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}
	p, err := k.ExtrudePath(path, 0.5, wg)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	if got := p.PolygonCount(); got != 1 {
		t.Fatalf("PolygonCount() = %d, want 1", got)
	}
	b := p.Bounds()
	if !geom.ClosePoints(b.Min, geom.Pt(0, -0.25)) || !geom.ClosePoints(b.Max, geom.Pt(10, 0.25)) {
		t.Errorf("Bounds() = %v, want (0,-0.25)..(10,0.25)", b)
	}
}

func TestExtrudePathMiterCorner(t *testing.T) {
	k := NewSoftware()

	// Right-angle corner at (10,0). With width 2 the outer miter point
	// lands at (11,-1) and the inner one at (9,1).
	path := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}
	p, err := k.ExtrudePath(path, 2, wg)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	poly := p.Polygons(wg)[0]
	if len(poly) != 6 {
		t.Fatalf("polygon has %d vertices, want 6", len(poly))
	}
	if !geom.ClosePoints(poly[1], geom.Pt(9, 1)) {
		t.Errorf("inner miter = %v, want (9, 1)", poly[1])
	}
	if !geom.ClosePoints(poly[4], geom.Pt(11, -1)) {
		t.Errorf("outer miter = %v, want (11, -1)", poly[4])
	}
	b := p.Bounds()
	if !geom.ClosePoints(b.Min, geom.Pt(0, -1)) || !geom.ClosePoints(b.Max, geom.Pt(11, 10)) {
		t.Errorf("Bounds() = %v, want (0,-1)..(11,10)", b)
	}
}

func TestExtrudePathDropsDuplicatePoints(t *testing.T) {
	k := NewSoftware()

	path := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(5, 0)}
	p, err := k.ExtrudePath(path, 1, wg)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	if got := len(p.Polygons(wg)[0]); got != 4 {
		t.Errorf("polygon has %d vertices, want 4", got)
	}
}

func TestExtrudePathErrors(t *testing.T) {
	k := NewSoftware()

	tests := []struct {
		name  string
		path  []geom.Point
		width float64
	}{
		{"zero width", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)}, 0},
		{"single point", []geom.Point{geom.Pt(0, 0)}, 1},
		{"nan point", []geom.Point{geom.Pt(0, 0), geom.Pt(math.NaN(), 0)}, 1},
		{"coincident points", []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1)}, 1},
		{"reversal", []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := k.ExtrudePath(tt.path, tt.width, wg)
			if !errors.Is(err, errors.ErrCodeKernel) {
				t.Errorf("ExtrudePath() error = %v, want kernel error", err)
			}
		})
	}
}

func TestExtrudeCrossSection(t *testing.T) {
	k := NewSoftware()

	xs := pdk.CrossSection{
		Name:           "rib",
		Width:          0.5,
		Layer:          wg,
		CladdingOffset: 3,
		CladdingLayers: []pdk.Layer{clad},
		Sections: []pdk.Section{
			{Name: "slab", Width: 6, Offset: 0, Layer: slab},
		},
	}
	path := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}

	p, err := k.ExtrudeCrossSection(path, xs)
	if err != nil {
		t.Fatalf("ExtrudeCrossSection() error = %v", err)
	}

	layers := p.Layers()
	want := []pdk.Layer{wg, slab, clad}
	if len(layers) != len(want) {
		t.Fatalf("Layers() = %v, want %v", layers, want)
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("Layers()[%d] = %v, want %v", i, layers[i], want[i])
		}
	}

	checks := []struct {
		layer pdk.Layer
		ymax  float64
	}{
		{wg, 0.25},
		{slab, 3},
		{clad, 3.25}, // 0.5/2 + 3
	}
	for _, c := range checks {
		b := boundsOn(p, c.layer)
		if !geom.Close(b.Max.Y, c.ymax) || !geom.Close(b.Min.Y, -c.ymax) {
			t.Errorf("layer %v spans y %g..%g, want ±%g", c.layer, b.Min.Y, b.Max.Y, c.ymax)
		}
	}
}

func TestExtrudeCrossSectionOffsetSection(t *testing.T) {
	k := NewSoftware()

	xs := pdk.CrossSection{
		Name:  "offset",
		Width: 0.5,
		Layer: wg,
		Sections: []pdk.Section{
			{Name: "rail", Width: 1, Offset: 2, Layer: slab},
		},
	}
	path := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}

	p, err := k.ExtrudeCrossSection(path, xs)
	if err != nil {
		t.Fatalf("ExtrudeCrossSection() error = %v", err)
	}
	b := boundsOn(p, slab)
	if !geom.Close(b.Min.Y, 1.5) || !geom.Close(b.Max.Y, 2.5) {
		t.Errorf("offset section spans y %g..%g, want 1.5..2.5", b.Min.Y, b.Max.Y)
	}
}

func TestUnion(t *testing.T) {
	k := NewSoftware()

	a, _ := k.Rectangle(2, 2, wg)
	b, _ := k.Rectangle(3, 3, slab)

	u, err := k.Union(a, b)
	if err != nil {
		t.Fatalf("Union() error = %v", err)
	}
	if got := u.PolygonCount(); got != 2 {
		t.Errorf("PolygonCount() = %d, want 2", got)
	}
	if got := len(u.Layers()); got != 2 {
		t.Errorf("len(Layers()) = %d, want 2", got)
	}
}

// boundsOn returns the bounds of the polygons on a single layer.
func boundsOn(p Payload, layer pdk.Layer) geom.Rect {
	r := geom.EmptyRect()
	for _, pg := range p.Polygons(layer) {
		r = r.Union(pg.Bounds())
	}
	return r
}
