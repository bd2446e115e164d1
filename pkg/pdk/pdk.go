// Package pdk holds the process-design-kit tables: named layers and named
// waveguide cross-section profiles. A PDK is built once (from the embedded
// generic kit, a TOML file, or a URL) and is immutable for the rest of the
// design run; builders resolve profile names through it and fail with a
// configuration error when a name is not registered.
package pdk

import (
	"fmt"
	"sort"

	"github.com/maskforge/maskforge/pkg/errors"
)

// Layer identifies a fabrication layer by GDS layer number and datatype.
type Layer struct {
	Number   int `json:"number" bson:"number" toml:"number"`
	Datatype int `json:"datatype" bson:"datatype" toml:"datatype"`
}

// String renders the conventional "number/datatype" form.
func (l Layer) String() string {
	return fmt.Sprintf("%d/%d", l.Number, l.Datatype)
}

// Section is one extruded strip of a cross-section: a width, an offset from
// the centerline, and the layer it is drawn on.
type Section struct {
	Name   string  `json:"name,omitempty" bson:"name,omitempty"`
	Width  float64 `json:"width" bson:"width"`
	Offset float64 `json:"offset" bson:"offset"`
	Layer  Layer   `json:"layer" bson:"layer"`
}

// CrossSection is a named waveguide profile. Width and Layer describe the
// core strip; Sections add further strips (slabs, trenches) at offsets from
// the centerline; the cladding fields describe the bounding cladding drawn
// around the core.
type CrossSection struct {
	Name           string    `json:"name" bson:"name"`
	Width          float64   `json:"width" bson:"width"`
	Layer          Layer     `json:"layer" bson:"layer"`
	Radius         float64   `json:"radius,omitempty" bson:"radius,omitempty"`
	TaperLength    float64   `json:"taper_length,omitempty" bson:"taper_length,omitempty"`
	CladdingOffset float64   `json:"cladding_offset,omitempty" bson:"cladding_offset,omitempty"`
	CladdingLayers []Layer   `json:"cladding_layers,omitempty" bson:"cladding_layers,omitempty"`
	Sections       []Section `json:"sections,omitempty" bson:"sections,omitempty"`
}

// WithWidth returns a copy of the profile with the core width replaced.
// Builders use this when a component narrows or widens a registered profile
// without touching the rest of it.
func (x CrossSection) WithWidth(width float64) CrossSection {
	x.Width = width
	return x
}

// PDK is an immutable registry of layers and cross-sections.
type PDK struct {
	name        string
	description string
	layers      map[string]Layer
	xsections   map[string]CrossSection
}

// Name returns the kit name.
func (p *PDK) Name() string { return p.name }

// Description returns the kit description, possibly empty.
func (p *PDK) Description() string { return p.description }

// Layer resolves a layer by name.
func (p *PDK) Layer(name string) (Layer, error) {
	l, ok := p.layers[name]
	if !ok {
		return Layer{}, errors.New(errors.ErrCodeUnknownProfile, "layer %q not registered in PDK %q", name, p.name)
	}
	return l, nil
}

// CrossSection resolves a cross-section profile by name.
func (p *PDK) CrossSection(name string) (CrossSection, error) {
	x, ok := p.xsections[name]
	if !ok {
		return CrossSection{}, errors.New(errors.ErrCodeUnknownProfile, "cross-section %q not registered in PDK %q", name, p.name)
	}
	return x, nil
}

// LayerNames returns the registered layer names in sorted order.
func (p *PDK) LayerNames() []string {
	names := make([]string, 0, len(p.layers))
	for name := range p.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CrossSectionNames returns the registered profile names in sorted order.
func (p *PDK) CrossSectionNames() []string {
	names := make([]string, 0, len(p.xsections))
	for name := range p.xsections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
