package components

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// StraightOptions configures Straight.
type StraightOptions struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width,omitempty"`
	CrossSection string  `json:"cross_section"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
func (o *StraightOptions) ValidateAndSetDefaults() error {
	if o.Length == 0 {
		o.Length = 10
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip"
	}
	if o.Length < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "length must be positive, got %g", o.Length)
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %g", o.Width)
	}
	return nil
}

// Straight returns a straight waveguide of the given length, extruded from
// a cross-section profile. Port o1 faces west at the origin and o2 faces
// east at (length, 0), both on the profile's core layer.
func Straight(ctx *cell.Context, opts StraightOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("straight", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildStraight(ctx, opts)
	})
}

func buildStraight(ctx *cell.Context, o StraightOptions) (*layout.Builder, error) {
	xs, err := resolveCrossSection(ctx, o.CrossSection, o.Width)
	if err != nil {
		return nil, err
	}
	path := []geom.Point{geom.Pt(0, 0), geom.Pt(o.Length, 0)}
	pay, err := ctx.Kernel.ExtrudeCrossSection(path, xs)
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("straight")
	b.AddPayload(pay)
	ports := []layout.Port{
		{Name: "o1", Position: geom.Pt(0, 0), Orientation: 180, Width: xs.Width, Layer: xs.Layer},
		{Name: "o2", Position: geom.Pt(o.Length, 0), Orientation: 0, Width: xs.Width, Layer: xs.Layer},
	}
	for _, p := range ports {
		if err := b.AddPort(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func straightFactory() Factory {
	return Factory{
		Name:        "straight",
		Description: "Straight waveguide extruded from a cross-section",
		Defaults: func() any {
			o := StraightOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o StraightOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return Straight(ctx, o)
		},
	}
}
