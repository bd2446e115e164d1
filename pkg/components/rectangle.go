package components

import (
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// RectangleOptions configures Rectangle.
type RectangleOptions struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Layer    string  `json:"layer"`
	Centered bool    `json:"centered"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
func (o *RectangleOptions) ValidateAndSetDefaults() error {
	if o.Width == 0 {
		o.Width = 4
	}
	if o.Height == 0 {
		o.Height = 2
	}
	if o.Layer == "" {
		o.Layer = "wg"
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %g", o.Width)
	}
	if o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "height must be positive, got %g", o.Height)
	}
	return nil
}

// Rectangle returns a filled rectangle. By default it spans
// (0,0)..(width,height); Centered moves it to straddle the origin.
func Rectangle(ctx *cell.Context, opts RectangleOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("rectangle", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildRectangle(ctx, opts)
	})
}

func buildRectangle(ctx *cell.Context, o RectangleOptions) (*layout.Builder, error) {
	layer, err := ctx.PDK.Layer(o.Layer)
	if err != nil {
		return nil, err
	}
	pay, err := ctx.Kernel.Rectangle(o.Width, o.Height, layer)
	if err != nil {
		return nil, err
	}
	if o.Centered {
		pay = pay.Transformed(geom.Translate(-o.Width/2, -o.Height/2))
	}
	b := ctx.NewBuilder("rectangle")
	b.AddPayload(pay)
	return b, nil
}

func rectangleFactory() Factory {
	return Factory{
		Name:        "rectangle",
		Description: "Filled rectangle on a single layer",
		Defaults: func() any {
			o := RectangleOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o RectangleOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return Rectangle(ctx, o)
		},
	}
}
