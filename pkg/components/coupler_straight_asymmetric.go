package components

import (
	"math"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// CouplerStraightAsymmetricOptions configures CouplerStraightAsymmetric.
type CouplerStraightAsymmetricOptions struct {
	Length       float64 `json:"length"`
	Gap          float64 `json:"gap"`
	WidthTop     float64 `json:"width_top"`
	WidthBot     float64 `json:"width_bot"`
	CrossSection string  `json:"cross_section"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
func (o *CouplerStraightAsymmetricOptions) ValidateAndSetDefaults() error {
	if o.Length == 0 {
		o.Length = 10
	}
	if o.Gap == 0 {
		o.Gap = 0.27
	}
	if o.WidthTop == 0 {
		o.WidthTop = 0.5
	}
	if o.WidthBot == 0 {
		o.WidthBot = 1
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip"
	}
	if o.Length < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "length must be positive, got %g", o.Length)
	}
	if o.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "gap must be positive, got %g", o.Gap)
	}
	if o.WidthTop < 0 || o.WidthBot < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "widths must be positive, got %g and %g", o.WidthTop, o.WidthBot)
	}
	return nil
}

// CouplerStraightAsymmetric returns two parallel straights of different
// widths separated by a gap. The bottom straight sits on the x axis and the
// top straight is raised so the facing edges are Gap apart. Ports are
// renamed into the canonical clockwise numbering, so o1 and o2 belong to
// the top straight and o3 and o4 to the bottom one.
func CouplerStraightAsymmetric(ctx *cell.Context, opts CouplerStraightAsymmetricOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("coupler_straight_asymmetric", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildCouplerStraightAsymmetric(ctx, opts)
	})
}

func buildCouplerStraightAsymmetric(ctx *cell.Context, o CouplerStraightAsymmetricOptions) (*layout.Builder, error) {
	top, err := Straight(ctx, StraightOptions{Length: o.Length, Width: o.WidthTop, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	bot, err := Straight(ctx, StraightOptions{Length: o.Length, Width: o.WidthBot, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("coupler_straight_asymmetric")
	topRef := b.AddRef(top)
	botRef := b.AddRef(bot)
	topRef.MoveY(0.5*math.Abs(o.WidthTop-o.WidthBot) + o.Gap + o.WidthTop)

	exports := []struct {
		name string
		ref  *layout.Ref
		port string
	}{
		{"o1", botRef, "o1"},
		{"o2", topRef, "o1"},
		{"o3", botRef, "o2"},
		{"o4", topRef, "o2"},
	}
	for _, e := range exports {
		if err := b.ExportPort(e.name, e.ref, e.port); err != nil {
			return nil, err
		}
	}
	b.AutoRenamePorts("o")
	return b, nil
}

func couplerStraightAsymmetricFactory() Factory {
	return Factory{
		Name:        "coupler_straight_asymmetric",
		Description: "Two parallel straights of different widths",
		Defaults: func() any {
			o := CouplerStraightAsymmetricOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o CouplerStraightAsymmetricOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return CouplerStraightAsymmetric(ctx, o)
		},
	}
}
