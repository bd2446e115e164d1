package components

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// BendSOptions configures BendS.
type BendSOptions struct {
	DX           float64 `json:"dx"`
	DY           float64 `json:"dy"`
	NPoints      int     `json:"npoints"`
	Width        float64 `json:"width,omitempty"`
	CrossSection string  `json:"cross_section"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
// DY may be negative for a downward bend; a zero DY takes the default, so
// use a straight for flat runs.
func (o *BendSOptions) ValidateAndSetDefaults() error {
	if o.DX == 0 {
		o.DX = 11
	}
	if o.DY == 0 {
		o.DY = 1.8
	}
	if o.NPoints == 0 {
		o.NPoints = 99
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip"
	}
	if o.DX < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "dx must be positive, got %g", o.DX)
	}
	if o.NPoints < 2 {
		return errors.New(errors.ErrCodeInvalidParameter, "npoints must be at least 2, got %d", o.NPoints)
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %g", o.Width)
	}
	return nil
}

// BendS returns an s-shaped bend that shifts the waveguide by DY over a
// horizontal run of DX, following a cubic bezier whose ends are tangent to
// the x axis. Port o1 faces west at the origin and o2 faces east at
// (DX, DY).
func BendS(ctx *cell.Context, opts BendSOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("bend_s", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildBendS(ctx, opts)
	})
}

func buildBendS(ctx *cell.Context, o BendSOptions) (*layout.Builder, error) {
	xs, err := resolveCrossSection(ctx, o.CrossSection, o.Width)
	if err != nil {
		return nil, err
	}
	path := geom.Bezier(
		geom.Pt(0, 0),
		geom.Pt(o.DX/2, 0),
		geom.Pt(o.DX/2, o.DY),
		geom.Pt(o.DX, o.DY),
		o.NPoints,
	)
	pay, err := ctx.Kernel.ExtrudeCrossSection(path, xs)
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("bend_s")
	b.AddPayload(pay)
	ports := []layout.Port{
		{Name: "o1", Position: geom.Pt(0, 0), Orientation: 180, Width: xs.Width, Layer: xs.Layer},
		{Name: "o2", Position: geom.Pt(o.DX, o.DY), Orientation: 0, Width: xs.Width, Layer: xs.Layer},
	}
	for _, p := range ports {
		if err := b.AddPort(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func bendSFactory() Factory {
	return Factory{
		Name:        "bend_s",
		Description: "S-shaped bezier bend between two parallel runs",
		Defaults: func() any {
			o := BendSOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o BendSOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return BendS(ctx, o)
		},
	}
}
