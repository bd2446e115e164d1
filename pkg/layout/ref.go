package layout

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
)

// Ref is the mutable handle for a child placed in a Builder. Movement
// methods return the receiver so placements chain; all of them update the
// single child-to-parent transform, so the order of calls is the order of
// application. Once the builder is finalized the placement is frozen and
// further movement panics.
type Ref struct {
	b         *Builder
	name      string
	child     *Component
	transform geom.Transform
}

// Name returns the instance name, unique within the builder.
func (r *Ref) Name() string {
	return r.name
}

// Component returns the referenced child.
func (r *Ref) Component() *Component {
	return r.child
}

// Transform returns the current child-to-parent transform.
func (r *Ref) Transform() geom.Transform {
	return r.transform
}

// Port returns the named child port mapped through the current transform.
func (r *Ref) Port(name string) (Port, error) {
	p, err := r.child.Port(name)
	if err != nil {
		return Port{}, err
	}
	return p.Transformed(r.transform), nil
}

// Ports returns all child ports mapped through the current transform.
func (r *Ref) Ports() []Port {
	out := make([]Port, len(r.child.ports))
	for i, p := range r.child.ports {
		out[i] = p.Transformed(r.transform)
	}
	return out
}

// Bounds returns the child's bounding box mapped into the parent frame.
func (r *Ref) Bounds() geom.Rect {
	return r.child.Bounds().TransformedBy(r.transform)
}

func (r *Ref) compose(step geom.Transform) *Ref {
	r.b.mustMutable()
	r.transform = step.Compose(r.transform)
	return r
}

// Move shifts the placement by (dx, dy).
func (r *Ref) Move(dx, dy float64) *Ref {
	return r.compose(geom.Translate(dx, dy))
}

// MoveX shifts the placement horizontally.
func (r *Ref) MoveX(dx float64) *Ref {
	return r.Move(dx, 0)
}

// MoveY shifts the placement vertically.
func (r *Ref) MoveY(dy float64) *Ref {
	return r.Move(0, dy)
}

// Rotate rotates the placement counterclockwise about the parent origin.
func (r *Ref) Rotate(degrees float64) *Ref {
	return r.compose(geom.Rotate(degrees))
}

// RotateAbout rotates the placement counterclockwise about a point in the
// parent frame.
func (r *Ref) RotateAbout(degrees float64, center geom.Point) *Ref {
	return r.compose(geom.RotateAbout(degrees, center))
}

// MirrorAcrossX mirrors the placement across the x axis.
func (r *Ref) MirrorAcrossX() *Ref {
	return r.compose(geom.ReflectAbout(geom.Pt(0, 0), 0))
}

// MirrorAcrossY mirrors the placement across the y axis.
func (r *Ref) MirrorAcrossY() *Ref {
	return r.compose(geom.ReflectAbout(geom.Pt(0, 0), 90))
}

// XMin returns the left edge of the placement's bounding box.
func (r *Ref) XMin() float64 { return r.Bounds().Min.X }

// XMax returns the right edge of the placement's bounding box.
func (r *Ref) XMax() float64 { return r.Bounds().Max.X }

// YMin returns the bottom edge of the placement's bounding box.
func (r *Ref) YMin() float64 { return r.Bounds().Min.Y }

// YMax returns the top edge of the placement's bounding box.
func (r *Ref) YMax() float64 { return r.Bounds().Max.Y }

// X returns the x coordinate of the bounding-box center.
func (r *Ref) X() float64 { return r.Bounds().Center().X }

// Y returns the y coordinate of the bounding-box center.
func (r *Ref) Y() float64 { return r.Bounds().Center().Y }

// SetXMin moves the placement so its bounding box starts at x. A ref with
// no geometry stays put.
func (r *Ref) SetXMin(x float64) *Ref {
	if b := r.Bounds(); !b.Empty() {
		return r.MoveX(x - b.Min.X)
	}
	return r
}

// SetXMax moves the placement so its bounding box ends at x.
func (r *Ref) SetXMax(x float64) *Ref {
	if b := r.Bounds(); !b.Empty() {
		return r.MoveX(x - b.Max.X)
	}
	return r
}

// SetYMin moves the placement so its bounding box starts at y.
func (r *Ref) SetYMin(y float64) *Ref {
	if b := r.Bounds(); !b.Empty() {
		return r.MoveY(y - b.Min.Y)
	}
	return r
}

// SetYMax moves the placement so its bounding box ends at y.
func (r *Ref) SetYMax(y float64) *Ref {
	if b := r.Bounds(); !b.Empty() {
		return r.MoveY(y - b.Max.Y)
	}
	return r
}

// SetX moves the placement so its bounding-box center sits at x.
func (r *Ref) SetX(x float64) *Ref {
	if b := r.Bounds(); !b.Empty() {
		return r.MoveX(x - b.Center().X)
	}
	return r
}

// SetY moves the placement so its bounding-box center sits at y.
func (r *Ref) SetY(y float64) *Ref {
	if b := r.Bounds(); !b.Empty() {
		return r.MoveY(y - b.Center().Y)
	}
	return r
}

// ConnectOption adjusts how Connect aligns and validates ports.
type ConnectOption func(*connectConfig)

type connectConfig struct {
	mirror             bool
	allowWidthMismatch bool
}

// WithMirror reflects the ref across the line through the source port
// along its orientation before aligning, flipping which way the child
// curves while keeping the port in place.
func WithMirror() ConnectOption {
	return func(c *connectConfig) { c.mirror = true }
}

// AllowWidthMismatch suppresses the width-mismatch diagnostic for this
// connection.
func AllowWidthMismatch() ConnectOption {
	return func(c *connectConfig) { c.allowWidthMismatch = true }
}

// Connect moves the ref so its named port lands exactly on target, facing
// the opposite direction. The rotation is applied about the source port,
// so the port position is solved exactly rather than approximately.
//
// The target port's layer must match the source port's; a mismatch is a
// port error and the ref does not move. Differing widths still connect
// but record a warning diagnostic on the builder unless the connection
// opts out via AllowWidthMismatch.
func (r *Ref) Connect(portName string, target Port, opts ...ConnectOption) error {
	r.b.mustMutable()
	var cfg connectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	src, err := r.Port(portName)
	if err != nil {
		return err
	}
	if src.Layer != target.Layer {
		return errors.New(errors.ErrCodePortLayer,
			"cannot connect port %q on layer %s to port %q on layer %s",
			src.Name, src.Layer, target.Name, target.Layer)
	}
	if !geom.Close(src.Width, target.Width) && !cfg.allowWidthMismatch {
		r.b.warn(errors.ErrCodePort,
			"width mismatch: port %q is %g wide, port %q is %g wide",
			src.Name, src.Width, target.Name, target.Width)
	}

	if cfg.mirror {
		r.compose(geom.ReflectAbout(src.Position, src.Orientation))
		// The source port sits on the mirror line, so its position and
		// orientation are unchanged; re-read to keep the math exact.
		src, _ = r.Port(portName)
	}

	rot := geom.NormalizeAngle(target.Orientation + 180 - src.Orientation)
	shift := target.Position.Sub(src.Position)
	step := geom.Translate(shift.X, shift.Y).Compose(geom.RotateAbout(rot, src.Position))
	r.compose(step)
	return nil
}
