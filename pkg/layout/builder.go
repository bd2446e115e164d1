package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/kernel"
)

// Builder accumulates the geometry, ports, and child references of a cell
// under construction. It is not safe for concurrent use. Finalize freezes
// it into an immutable Component; any mutation after that panics, since
// continuing to build a frozen cell is a programming error.
type Builder struct {
	name    string
	key     string
	payload kernel.Payload
	ports   []Port
	portIdx map[string]int
	refs    []*Ref
	diags   []Diagnostic
	logger  *log.Logger
	done    *Component
}

// NewBuilder returns an empty builder for a cell with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name, portIdx: make(map[string]int)}
}

// Name returns the cell name the builder will freeze under.
func (b *Builder) Name() string {
	return b.name
}

// SetName replaces the cell name. The cell cache uses this to stamp the
// canonical name derived from the factory and its parameters.
func (b *Builder) SetName(name string) {
	b.mustMutable()
	b.name = name
}

// SetKey records the identity digest the frozen component will report.
// The cell cache stamps it alongside the canonical name; hand-built
// components leave it empty.
func (b *Builder) SetKey(key string) {
	b.mustMutable()
	b.key = key
}

// SetLogger attaches a logger for warning-class diagnostics. A nil logger
// keeps diagnostics silent; they are still recorded.
func (b *Builder) SetLogger(logger *log.Logger) {
	b.logger = logger
}

// AddPayload merges geometry into the cell.
func (b *Builder) AddPayload(p kernel.Payload) {
	b.mustMutable()
	b.payload = b.payload.Merge(p)
}

// AddRef places a frozen child component at the identity transform and
// returns the handle used to move and connect it. Only frozen components
// can be referenced, which keeps the hierarchy acyclic by construction.
func (b *Builder) AddRef(child *Component) *Ref {
	b.mustMutable()
	if child == nil {
		panic("layout: AddRef called with nil component")
	}
	r := &Ref{
		b:         b,
		name:      fmt.Sprintf("%s_%d", child.name, len(b.refs)),
		child:     child,
		transform: geom.Identity(),
	}
	b.refs = append(b.refs, r)
	return r
}

// AddPort registers a connection point on the cell. The name must be a
// valid port identifier and unique within the cell, and the width must be
// positive. The orientation is normalized to [0,360).
func (b *Builder) AddPort(p Port) error {
	b.mustMutable()
	if err := errors.ValidatePortName(p.Name); err != nil {
		return err
	}
	if p.Width <= 0 || math.IsNaN(p.Width) {
		return errors.New(errors.ErrCodePortInvalid,
			"port %q width must be positive, got %g", p.Name, p.Width)
	}
	if _, exists := b.portIdx[p.Name]; exists {
		return errors.New(errors.ErrCodePortDuplicate,
			"cell %q already has a port named %q", b.name, p.Name)
	}
	p.Orientation = geom.NormalizeAngle(p.Orientation)
	b.portIdx[p.Name] = len(b.ports)
	b.ports = append(b.ports, p)
	return nil
}

// ExportPort re-exposes a child port on the parent under a new name,
// mapped through the reference's transform.
func (b *Builder) ExportPort(name string, r *Ref, childPort string) error {
	b.mustMutable()
	p, err := r.Port(childPort)
	if err != nil {
		return err
	}
	p.Name = name
	return b.AddPort(p)
}

// Ports returns a copy of the ports registered so far.
func (b *Builder) Ports() []Port {
	out := make([]Port, len(b.ports))
	copy(out, b.ports)
	return out
}

// Port returns a registered port by name.
func (b *Builder) Port(name string) (Port, error) {
	i, ok := b.portIdx[name]
	if !ok {
		return Port{}, errors.New(errors.ErrCodePortUnknown,
			"cell %q has no port %q", b.name, name)
	}
	return b.ports[i], nil
}

// AutoRenamePorts renames every port to prefix plus a 1-based index,
// ordered clockwise around the bounding-box center starting from west.
// Ties in angle fall back to x then y, so the order is deterministic.
func (b *Builder) AutoRenamePorts(prefix string) {
	b.mustMutable()
	if len(b.ports) == 0 {
		return
	}
	center := geom.Pt(0, 0)
	if bb := b.Bounds(); !bb.Empty() {
		center = bb.Center()
	}
	angles := make([]float64, len(b.ports))
	order := make([]int, len(b.ports))
	for i, p := range b.ports {
		d := p.Position.Sub(center)
		deg := math.Atan2(d.Y, d.X) * 180 / math.Pi
		angles[i] = geom.NormalizeAngle(180 - deg)
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool {
		pa, pc := b.ports[order[a]], b.ports[order[c]]
		if angles[order[a]] != angles[order[c]] {
			return angles[order[a]] < angles[order[c]]
		}
		if pa.Position.X != pc.Position.X {
			return pa.Position.X < pc.Position.X
		}
		return pa.Position.Y < pc.Position.Y
	})
	renamed := make([]Port, len(b.ports))
	idx := make(map[string]int, len(b.ports))
	for rank, i := range order {
		p := b.ports[i]
		p.Name = fmt.Sprintf("%s%d", prefix, rank+1)
		renamed[rank] = p
		idx[p.Name] = rank
	}
	b.ports = renamed
	b.portIdx = idx
}

// Flatten resolves every reference's geometry into the cell's own payload,
// recursively, and drops the references. Ports are unchanged.
func (b *Builder) Flatten() {
	b.mustMutable()
	for _, r := range b.refs {
		b.payload = b.payload.Merge(r.child.FlattenedPayload().Transformed(r.transform))
	}
	b.refs = nil
}

// Bounds returns the bounding box over the cell's geometry and all
// references placed so far.
func (b *Builder) Bounds() geom.Rect {
	out := b.payload.Bounds()
	for _, r := range b.refs {
		out = out.Union(r.Bounds())
	}
	return out
}

// Diagnostics returns a copy of the non-fatal conditions recorded so far.
func (b *Builder) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}

// Finalize freezes the builder into an immutable Component. Calling it
// again returns the same instance.
func (b *Builder) Finalize() (*Component, error) {
	if b.done != nil {
		return b.done, nil
	}
	if err := errors.ValidateName(b.name); err != nil {
		return nil, err
	}
	refs := make([]Reference, len(b.refs))
	for i, r := range b.refs {
		refs[i] = Reference{name: r.name, child: r.child, transform: r.transform}
	}
	ports := make([]Port, len(b.ports))
	copy(ports, b.ports)
	idx := make(map[string]int, len(b.portIdx))
	for name, i := range b.portIdx {
		idx[name] = i
	}
	diags := make([]Diagnostic, len(b.diags))
	copy(diags, b.diags)
	c := &Component{
		name:    b.name,
		key:     b.key,
		payload: b.payload,
		ports:   ports,
		portIdx: idx,
		refs:    refs,
		diags:   diags,
	}
	c.bounds = b.Bounds()
	b.done = c
	return c, nil
}

func (b *Builder) warn(code errors.Code, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	b.diags = append(b.diags, Diagnostic{Severity: SeverityWarning, Code: code, Message: msg})
	if b.logger != nil {
		b.logger.Warn(msg, "cell", b.name)
	}
}

func (b *Builder) mustMutable() {
	if b.done != nil {
		panic("layout: Builder used after Finalize")
	}
}
