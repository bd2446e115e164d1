package kernel

import (
	"math"

	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// Software is the built-in geometry kernel. It generates polygons with
// plain float64 arithmetic and no external geometry engine, trading exact
// boolean operations for full determinism.
type Software struct{}

// NewSoftware returns the built-in software kernel.
func NewSoftware() *Software {
	return &Software{}
}

var _ Kernel = (*Software)(nil)

// Rectangle returns a single rectangle polygon spanning (0,0)..(width,height).
func (k *Software) Rectangle(width, height float64, layer pdk.Layer) (Payload, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return Payload{}, errBadWidth(width)
	}
	if height <= 0 || math.IsNaN(height) || math.IsInf(height, 0) {
		return Payload{}, errBadWidth(height)
	}
	poly := geom.Polygon{
		geom.Pt(0, 0),
		geom.Pt(width, 0),
		geom.Pt(width, height),
		geom.Pt(0, height),
	}
	return FromPolygons(layer, poly), nil
}

// ExtrudePath sweeps width symmetrically along the polyline and returns
// the resulting outline as one polygon.
func (k *Software) ExtrudePath(path []geom.Point, width float64, layer pdk.Layer) (Payload, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return Payload{}, errBadWidth(width)
	}
	if err := validPath(path); err != nil {
		return Payload{}, err
	}
	pts := dedupe(path)
	if len(pts) < 2 {
		return Payload{}, errBadPath("all points coincide")
	}
	joins, err := joinNormals(pts)
	if err != nil {
		return Payload{}, err
	}
	half := width / 2
	n := len(pts)
	poly := make(geom.Polygon, 0, 2*n)
	for i := 0; i < n; i++ {
		poly = append(poly, pts[i].Add(joins[i].Scale(half)))
	}
	for i := n - 1; i >= 0; i-- {
		poly = append(poly, pts[i].Sub(joins[i].Scale(half)))
	}
	return FromPolygons(layer, poly), nil
}

// ExtrudeCrossSection sweeps every element of the cross section along the
// centerline and merges the results into one payload.
func (k *Software) ExtrudeCrossSection(path []geom.Point, xs pdk.CrossSection) (Payload, error) {
	out, err := k.ExtrudePath(path, xs.Width, xs.Layer)
	if err != nil {
		return Payload{}, err
	}
	for _, s := range xs.Sections {
		center := path
		if s.Offset != 0 {
			center, err = offsetPath(path, s.Offset)
			if err != nil {
				return Payload{}, err
			}
		}
		p, err := k.ExtrudePath(center, s.Width, s.Layer)
		if err != nil {
			return Payload{}, err
		}
		out = out.Merge(p)
	}
	if len(xs.CladdingLayers) > 0 {
		cw := xs.Width + 2*xs.CladdingOffset
		for _, layer := range xs.CladdingLayers {
			p, err := k.ExtrudePath(path, cw, layer)
			if err != nil {
				return Payload{}, err
			}
			out = out.Merge(p)
		}
	}
	return out, nil
}

// Union combines two payloads. The software kernel keeps the polygons
// side by side rather than computing a boolean merge.
func (k *Software) Union(a, b Payload) (Payload, error) {
	return a.Merge(b), nil
}

// dedupe drops consecutive points closer than the geometric tolerance.
func dedupe(path []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(path))
	for _, p := range path {
		if len(out) > 0 && geom.ClosePoints(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// joinNormals returns the unit-ish offset direction at every vertex: the
// left-hand normal on end vertices and the miter direction, scaled so a
// constant-width sweep stays constant through the corner, on interior
// vertices. Paths that double back on themselves are rejected because the
// miter length diverges.
func joinNormals(pts []geom.Point) ([]geom.Point, error) {
	n := len(pts)
	dirs := make([]geom.Point, n-1)
	for i := 0; i < n-1; i++ {
		d := pts[i+1].Sub(pts[i])
		l := math.Hypot(d.X, d.Y)
		dirs[i] = geom.Pt(d.X/l, d.Y/l)
	}
	normal := func(d geom.Point) geom.Point { return geom.Pt(-d.Y, d.X) }

	joins := make([]geom.Point, n)
	joins[0] = normal(dirs[0])
	joins[n-1] = normal(dirs[n-2])
	for i := 1; i < n-1; i++ {
		a := normal(dirs[i-1])
		b := normal(dirs[i])
		m := a.Add(b)
		l := math.Hypot(m.X, m.Y)
		if l < geom.Tolerance {
			return nil, errBadPath("direction reverses at point %d", i)
		}
		m = geom.Pt(m.X/l, m.Y/l)
		cos := m.X*b.X + m.Y*b.Y
		if cos < geom.Tolerance {
			return nil, errBadPath("direction reverses at point %d", i)
		}
		joins[i] = m.Scale(1 / cos)
	}
	return joins, nil
}

// offsetPath shifts the polyline perpendicular to its direction of travel
// by off, positive to the left.
func offsetPath(path []geom.Point, off float64) ([]geom.Point, error) {
	pts := dedupe(path)
	if len(pts) < 2 {
		return nil, errBadPath("all points coincide")
	}
	joins, err := joinNormals(pts)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(joins[i].Scale(off))
	}
	return out, nil
}
