package geom

// Polygon is a closed polygon given by its vertices in order. The closing
// edge from the last vertex back to the first is implicit.
type Polygon []Point

// Transformed returns a new polygon with every vertex mapped through t.
func (pg Polygon) Transformed(t Transform) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = t.Apply(p)
	}
	return out
}

// Bounds returns the polygon's bounding rectangle.
func (pg Polygon) Bounds() Rect {
	return BoundsOf(pg)
}

// Clone returns an independent copy.
func (pg Polygon) Clone() Polygon {
	out := make(Polygon, len(pg))
	copy(out, pg)
	return out
}
