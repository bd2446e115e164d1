package netlist

import (
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// Design is the canonical serialization format for a built hierarchy.
// Cells are ordered children before parents; Top names the root cell.
type Design struct {
	Name  string `json:"name" bson:"name"`
	Top   string `json:"top" bson:"top"`
	Cells []Cell `json:"cells" bson:"cells"`
}

// Cell is one frozen component: the layers its own payload draws on, how
// many polygons it holds, its ports, and its positioned instances.
type Cell struct {
	Name      string      `json:"name" bson:"name"`
	Layers    []pdk.Layer `json:"layers,omitempty" bson:"layers,omitempty"`
	Polygons  int         `json:"polygons,omitempty" bson:"polygons,omitempty"`
	Ports     []Port      `json:"ports,omitempty" bson:"ports,omitempty"`
	Instances []Instance  `json:"instances,omitempty" bson:"instances,omitempty"`
}

// Port is a serialized layout.Port with the position flattened.
type Port struct {
	Name        string    `json:"name" bson:"name"`
	X           float64   `json:"x" bson:"x"`
	Y           float64   `json:"y" bson:"y"`
	Orientation float64   `json:"orientation" bson:"orientation"`
	Width       float64   `json:"width" bson:"width"`
	Layer       pdk.Layer `json:"layer" bson:"layer"`
}

// Instance is a positioned reference to another cell in the same design.
type Instance struct {
	Name      string        `json:"name" bson:"name"`
	Cell      string        `json:"cell" bson:"cell"`
	Transform TransformSpec `json:"transform" bson:"transform"`
}

// TransformSpec is a serialized placement: an optional mirror across the
// x-axis, then a rotation in degrees, then a translation.
type TransformSpec struct {
	DX       float64 `json:"dx" bson:"dx"`
	DY       float64 `json:"dy" bson:"dy"`
	Rotation float64 `json:"rotation,omitempty" bson:"rotation,omitempty"`
	Reflect  bool    `json:"reflect,omitempty" bson:"reflect,omitempty"`
}

// Transform converts the serialized placement back into a geometry transform.
func (ts TransformSpec) Transform() geom.Transform {
	return geom.Transform{DX: ts.DX, DY: ts.DY, Rotation: ts.Rotation, Reflect: ts.Reflect}
}

// FromComponent serializes the hierarchy under top. Each distinct
// component is written once, children before parents, so instances always
// point backward in the cell list.
func FromComponent(top *layout.Component) Design {
	seen := make(map[*layout.Component]bool)
	var cells []Cell

	var walk func(c *layout.Component)
	walk = func(c *layout.Component) {
		if seen[c] {
			return
		}
		seen[c] = true
		for _, ref := range c.References() {
			walk(ref.Component())
		}
		cells = append(cells, cellFrom(c))
	}
	walk(top)

	return Design{Name: top.Name(), Top: top.Name(), Cells: cells}
}

func cellFrom(c *layout.Component) Cell {
	pay := c.Payload()
	cell := Cell{
		Name:     c.Name(),
		Polygons: pay.PolygonCount(),
	}
	// Leave Layers nil for cells without their own geometry so the
	// in-memory form matches what a JSON round trip reproduces.
	if !pay.Empty() {
		cell.Layers = pay.Layers()
	}
	for _, p := range c.Ports() {
		cell.Ports = append(cell.Ports, portFrom(p))
	}
	for _, ref := range c.References() {
		t := ref.Transform()
		cell.Instances = append(cell.Instances, Instance{
			Name: ref.Name(),
			Cell: ref.Component().Name(),
			Transform: TransformSpec{
				DX:       t.DX,
				DY:       t.DY,
				Rotation: t.Rotation,
				Reflect:  t.Reflect,
			},
		})
	}
	return cell
}

func portFrom(p layout.Port) Port {
	return Port{
		Name:        p.Name,
		X:           p.Position.X,
		Y:           p.Position.Y,
		Orientation: p.Orientation,
		Width:       p.Width,
		Layer:       p.Layer,
	}
}
