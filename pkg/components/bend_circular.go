package components

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// BendCircularOptions configures BendCircular.
type BendCircularOptions struct {
	Radius       float64 `json:"radius,omitempty"`
	Angle        float64 `json:"angle"`
	NPoints      int     `json:"npoints"`
	Width        float64 `json:"width,omitempty"`
	CrossSection string  `json:"cross_section"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
// A zero Radius defers to the cross-section's bend radius, which is only
// resolved at build time.
func (o *BendCircularOptions) ValidateAndSetDefaults() error {
	if o.Angle == 0 {
		o.Angle = 90
	}
	if o.NPoints == 0 {
		o.NPoints = 99
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip"
	}
	if o.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "radius must be positive, got %g", o.Radius)
	}
	if o.NPoints < 2 {
		return errors.New(errors.ErrCodeInvalidParameter, "npoints must be at least 2, got %d", o.NPoints)
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %g", o.Width)
	}
	return nil
}

// BendCircular returns a circular arc bend. The waveguide enters heading
// east at the origin and turns counterclockwise by Angle degrees, or
// clockwise when Angle is negative. Port o1 faces west at the origin; o2
// sits at the arc end facing along the outgoing direction.
func BendCircular(ctx *cell.Context, opts BendCircularOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("bend_circular", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildBendCircular(ctx, opts)
	})
}

func buildBendCircular(ctx *cell.Context, o BendCircularOptions) (*layout.Builder, error) {
	xs, err := resolveCrossSection(ctx, o.CrossSection, o.Width)
	if err != nil {
		return nil, err
	}
	radius := o.Radius
	if radius == 0 {
		radius = xs.Radius
	}
	if radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"no radius given and cross-section %q has none", xs.Name)
	}

	var path []geom.Point
	if o.Angle > 0 {
		center := geom.Pt(0, radius)
		path = geom.Arc(center, radius, -90, -90+o.Angle, o.NPoints)
	} else {
		center := geom.Pt(0, -radius)
		path = geom.Arc(center, radius, 90, 90+o.Angle, o.NPoints)
	}
	pay, err := ctx.Kernel.ExtrudeCrossSection(path, xs)
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("bend_circular")
	b.AddPayload(pay)
	end := path[len(path)-1]
	ports := []layout.Port{
		{Name: "o1", Position: geom.Pt(0, 0), Orientation: 180, Width: xs.Width, Layer: xs.Layer},
		{Name: "o2", Position: end, Orientation: geom.NormalizeAngle(o.Angle), Width: xs.Width, Layer: xs.Layer},
	}
	for _, p := range ports {
		if err := b.AddPort(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func bendCircularFactory() Factory {
	return Factory{
		Name:        "bend_circular",
		Description: "Circular arc bend with a configurable sweep angle",
		Defaults: func() any {
			o := BendCircularOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o BendCircularOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return BendCircular(ctx, o)
		},
	}
}
