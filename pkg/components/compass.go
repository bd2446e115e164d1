package components

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// CompassOptions configures Compass.
type CompassOptions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Layer  string  `json:"layer"`
	Prefix string  `json:"prefix"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
func (o *CompassOptions) ValidateAndSetDefaults() error {
	if o.Width == 0 {
		o.Width = 4
	}
	if o.Height == 0 {
		o.Height = 2
	}
	if o.Layer == "" {
		o.Layer = "wg"
	}
	if o.Prefix == "" {
		o.Prefix = "e"
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %g", o.Width)
	}
	if o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "height must be positive, got %g", o.Height)
	}
	return nil
}

// Compass returns a rectangle centered on the origin with one port on each
// edge. Ports are numbered clockwise starting from the west edge, so the
// defaults produce e1 (west), e2 (north), e3 (east), and e4 (south). The
// edge ports span their full edge, which makes compass the usual anchor for
// pads and other abutment-style connections.
func Compass(ctx *cell.Context, opts CompassOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("compass", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildCompass(ctx, opts)
	})
}

func buildCompass(ctx *cell.Context, o CompassOptions) (*layout.Builder, error) {
	layer, err := ctx.PDK.Layer(o.Layer)
	if err != nil {
		return nil, err
	}
	rect, err := Rectangle(ctx, RectangleOptions{
		Width:    o.Width,
		Height:   o.Height,
		Layer:    o.Layer,
		Centered: true,
	})
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("compass")
	b.AddRef(rect)

	w, h := o.Width, o.Height
	edges := []layout.Port{
		{Name: o.Prefix + "1", Position: geom.Pt(-w/2, 0), Orientation: 180, Width: h, Layer: layer},
		{Name: o.Prefix + "2", Position: geom.Pt(0, h/2), Orientation: 90, Width: w, Layer: layer},
		{Name: o.Prefix + "3", Position: geom.Pt(w/2, 0), Orientation: 0, Width: h, Layer: layer},
		{Name: o.Prefix + "4", Position: geom.Pt(0, -h/2), Orientation: 270, Width: w, Layer: layer},
	}
	for _, p := range edges {
		if err := b.AddPort(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compassFactory() Factory {
	return Factory{
		Name:        "compass",
		Description: "Centered rectangle with a port on each edge",
		Defaults: func() any {
			o := CompassOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o CompassOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return Compass(ctx, o)
		},
	}
}
