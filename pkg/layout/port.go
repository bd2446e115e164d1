package layout

import (
	"fmt"

	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// Port is a named connection point on a component: a position, the
// direction the port faces (degrees, normalized to [0,360)), a width, and
// the layer the connection is made on. Ports are plain values; the ports
// reported by a Ref or Reference are already mapped into the parent frame.
type Port struct {
	Name        string     `json:"name"`
	Position    geom.Point `json:"position"`
	Orientation float64    `json:"orientation"`
	Width       float64    `json:"width"`
	Layer       pdk.Layer  `json:"layer"`
}

// Transformed returns the port mapped through t.
func (p Port) Transformed(t geom.Transform) Port {
	p.Position = t.Apply(p.Position)
	p.Orientation = t.ApplyAngle(p.Orientation)
	return p
}

// String renders the port for logs and error messages.
func (p Port) String() string {
	return fmt.Sprintf("%s at (%g, %g) facing %g width %g layer %s",
		p.Name, p.Position.X, p.Position.Y, p.Orientation, p.Width, p.Layer)
}
