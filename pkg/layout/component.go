package layout

import (
	"sort"
	"strings"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/kernel"
)

// Component is a frozen cell: geometry, ports, and references to frozen
// children. Components are created only by Builder.Finalize and never
// change afterwards, so a single instance can be shared by the cell cache
// and referenced from many parents at once.
type Component struct {
	name    string
	key     string
	payload kernel.Payload
	ports   []Port
	portIdx map[string]int
	refs    []Reference
	diags   []Diagnostic
	bounds  geom.Rect
}

// Name returns the component's canonical name.
func (c *Component) Name() string {
	return c.name
}

// Key returns the identity digest of the cell cache entry that produced
// the component. Hand-built components have an empty key.
func (c *Component) Key() string {
	return c.key
}

// Payload returns the component's own geometry, excluding references.
func (c *Component) Payload() kernel.Payload {
	return c.payload
}

// Bounds returns the bounding box over the component's geometry and all
// of its references, computed once at freeze time.
func (c *Component) Bounds() geom.Rect {
	return c.bounds
}

// Ports returns a copy of the component's ports in definition order.
func (c *Component) Ports() []Port {
	out := make([]Port, len(c.ports))
	copy(out, c.ports)
	return out
}

// PortNames returns the port names in definition order.
func (c *Component) PortNames() []string {
	out := make([]string, len(c.ports))
	for i, p := range c.ports {
		out[i] = p.Name
	}
	return out
}

// HasPort reports whether the component has a port with the given name.
func (c *Component) HasPort(name string) bool {
	_, ok := c.portIdx[name]
	return ok
}

// Port returns the named port. Unknown names are port errors listing the
// available ports.
func (c *Component) Port(name string) (Port, error) {
	i, ok := c.portIdx[name]
	if !ok {
		return Port{}, errors.New(errors.ErrCodePortUnknown,
			"component %q has no port %q (available: %s)", c.name, name, c.portList())
	}
	return c.ports[i], nil
}

func (c *Component) portList() string {
	if len(c.ports) == 0 {
		return "none"
	}
	names := c.PortNames()
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// References returns a copy of the component's placed children.
func (c *Component) References() []Reference {
	out := make([]Reference, len(c.refs))
	copy(out, c.refs)
	return out
}

// Diagnostics returns a copy of the non-fatal conditions recorded while
// the component was built.
func (c *Component) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// FlattenedPayload returns the component's full geometry with every
// reference resolved recursively into absolute coordinates.
func (c *Component) FlattenedPayload() kernel.Payload {
	out := c.payload
	for _, r := range c.refs {
		out = out.Merge(r.child.FlattenedPayload().Transformed(r.transform))
	}
	return out
}

// Reference is a frozen placement of a child component inside a parent:
// the child plus the transform mapping child coordinates into the parent
// frame. Obtained from Component.References after freeze.
type Reference struct {
	name      string
	child     *Component
	transform geom.Transform
}

// Name returns the instance name, unique within the parent.
func (r Reference) Name() string {
	return r.name
}

// Component returns the referenced child.
func (r Reference) Component() *Component {
	return r.child
}

// Transform returns the child-to-parent transform.
func (r Reference) Transform() geom.Transform {
	return r.transform
}

// Bounds returns the child's bounding box mapped into the parent frame.
func (r Reference) Bounds() geom.Rect {
	return r.child.Bounds().TransformedBy(r.transform)
}

// Port returns the named child port mapped into the parent frame.
func (r Reference) Port(name string) (Port, error) {
	p, err := r.child.Port(name)
	if err != nil {
		return Port{}, err
	}
	return p.Transformed(r.transform), nil
}

// Ports returns all child ports mapped into the parent frame.
func (r Reference) Ports() []Port {
	out := make([]Port, len(r.child.ports))
	for i, p := range r.child.ports {
		out[i] = p.Transformed(r.transform)
	}
	return out
}
