package kernel

import (
	"sort"

	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// Payload is an immutable set of polygons grouped by layer. Components
// treat it as an opaque value: payloads are combined only by Merge and
// repositioned only by Transformed, both of which return new values and
// leave their operands untouched.
type Payload struct {
	layers map[pdk.Layer][]geom.Polygon
}

// FromPolygons builds a payload holding the given polygons on one layer.
func FromPolygons(layer pdk.Layer, polys ...geom.Polygon) Payload {
	if len(polys) == 0 {
		return Payload{}
	}
	cp := make([]geom.Polygon, len(polys))
	for i, pg := range polys {
		cp[i] = pg.Clone()
	}
	return Payload{layers: map[pdk.Layer][]geom.Polygon{layer: cp}}
}

// Empty reports whether the payload holds no polygons.
func (p Payload) Empty() bool {
	return len(p.layers) == 0
}

// Layers returns the layers present, ordered by number then datatype.
func (p Payload) Layers() []pdk.Layer {
	out := make([]pdk.Layer, 0, len(p.layers))
	for l := range p.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].Datatype < out[j].Datatype
	})
	return out
}

// Polygons returns the polygons on a layer. The returned slice is a copy;
// the vertex data is shared and must not be modified.
func (p Payload) Polygons(layer pdk.Layer) []geom.Polygon {
	src := p.layers[layer]
	if len(src) == 0 {
		return nil
	}
	out := make([]geom.Polygon, len(src))
	copy(out, src)
	return out
}

// PolygonCount returns the total number of polygons across all layers.
func (p Payload) PolygonCount() int {
	n := 0
	for _, polys := range p.layers {
		n += len(polys)
	}
	return n
}

// Merge returns a payload holding the polygons of both operands.
func (p Payload) Merge(other Payload) Payload {
	if p.Empty() {
		return other
	}
	if other.Empty() {
		return p
	}
	out := make(map[pdk.Layer][]geom.Polygon, len(p.layers)+len(other.layers))
	for l, polys := range p.layers {
		out[l] = append(out[l], polys...)
	}
	for l, polys := range other.layers {
		out[l] = append(out[l], polys...)
	}
	return Payload{layers: out}
}

// Transformed returns the payload with every polygon mapped through t.
func (p Payload) Transformed(t geom.Transform) Payload {
	if p.Empty() || t.IsIdentity() {
		return p
	}
	out := make(map[pdk.Layer][]geom.Polygon, len(p.layers))
	for l, polys := range p.layers {
		moved := make([]geom.Polygon, len(polys))
		for i, pg := range polys {
			moved[i] = pg.Transformed(t)
		}
		out[l] = moved
	}
	return Payload{layers: out}
}

// Bounds returns the bounding rectangle over all layers; empty payloads
// return the empty rectangle.
func (p Payload) Bounds() geom.Rect {
	r := geom.EmptyRect()
	for _, polys := range p.layers {
		for _, pg := range polys {
			r = r.Union(pg.Bounds())
		}
	}
	return r
}
