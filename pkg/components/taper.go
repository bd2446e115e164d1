package components

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/kernel"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// TaperOptions configures Taper.
type TaperOptions struct {
	Length       float64 `json:"length"`
	Width1       float64 `json:"width1"`
	Width2       float64 `json:"width2,omitempty"`
	CrossSection string  `json:"cross_section"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
// A zero Width2 tapers to Width1, which degenerates into a straight.
func (o *TaperOptions) ValidateAndSetDefaults() error {
	if o.Length == 0 {
		o.Length = 10
	}
	if o.Width1 == 0 {
		o.Width1 = 0.5
	}
	if o.Width2 == 0 {
		o.Width2 = o.Width1
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip"
	}
	if o.Length < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "length must be positive, got %g", o.Length)
	}
	if o.Width1 < 0 || o.Width2 < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "widths must be positive, got %g and %g", o.Width1, o.Width2)
	}
	return nil
}

// Taper returns a linear taper from Width1 at the origin to Width2 at
// (length, 0). Port o1 faces west with Width1, port o2 faces east with
// Width2. Cladding layers taper alongside the core; plain sections keep
// their own width for the full length.
func Taper(ctx *cell.Context, opts TaperOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("taper", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildTaper(ctx, opts)
	})
}

// trapezoid spans x in [0, length] with half-width h1 at the start and h2
// at the end, wound counterclockwise.
func trapezoid(length, h1, h2 float64) geom.Polygon {
	return geom.Polygon{
		geom.Pt(0, -h1),
		geom.Pt(length, -h2),
		geom.Pt(length, h2),
		geom.Pt(0, h1),
	}
}

func buildTaper(ctx *cell.Context, o TaperOptions) (*layout.Builder, error) {
	xs, err := resolveCrossSection(ctx, o.CrossSection, 0)
	if err != nil {
		return nil, err
	}

	// The extrusion kernel only handles constant-width paths, so the
	// taper assembles its trapezoids directly.
	pay := kernel.FromPolygons(xs.Layer, trapezoid(o.Length, o.Width1/2, o.Width2/2))
	for _, s := range xs.Sections {
		strip := geom.Polygon{
			geom.Pt(0, s.Offset-s.Width/2),
			geom.Pt(o.Length, s.Offset-s.Width/2),
			geom.Pt(o.Length, s.Offset+s.Width/2),
			geom.Pt(0, s.Offset+s.Width/2),
		}
		pay = pay.Merge(kernel.FromPolygons(s.Layer, strip))
	}
	for _, cl := range xs.CladdingLayers {
		h1 := o.Width1/2 + xs.CladdingOffset
		h2 := o.Width2/2 + xs.CladdingOffset
		pay = pay.Merge(kernel.FromPolygons(cl, trapezoid(o.Length, h1, h2)))
	}

	b := ctx.NewBuilder("taper")
	b.AddPayload(pay)
	ports := []layout.Port{
		{Name: "o1", Position: geom.Pt(0, 0), Orientation: 180, Width: o.Width1, Layer: xs.Layer},
		{Name: "o2", Position: geom.Pt(o.Length, 0), Orientation: 0, Width: o.Width2, Layer: xs.Layer},
	}
	for _, p := range ports {
		if err := b.AddPort(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func taperFactory() Factory {
	return Factory{
		Name:        "taper",
		Description: "Linear taper between two waveguide widths",
		Defaults: func() any {
			o := TaperOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o TaperOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return Taper(ctx, o)
		},
	}
}
