package components

import (
	"math"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// Fanout geometry shared by both arms of the contra-directional coupler.
const (
	fanoutDX       = 12.0
	fanoutDY       = 3.0
	fanoutTaperLen = 15.0
)

// ContraDCOptions configures ContraDC.
type ContraDCOptions struct {
	W1           float64 `json:"w1"`
	W2           float64 `json:"w2"`
	Gap          float64 `json:"gap"`
	DW1          float64 `json:"dw1"`
	DW2          float64 `json:"dw2"`
	WidthIO      float64 `json:"width_io"`
	Periods      int     `json:"periods"`
	Pitch        float64 `json:"pitch"`
	CrossSection string  `json:"cross_section"`
}

// ValidateAndSetDefaults fills unset fields and rejects invalid values.
func (o *ContraDCOptions) ValidateAndSetDefaults() error {
	if o.W1 == 0 {
		o.W1 = 0.45
	}
	if o.W2 == 0 {
		o.W2 = 0.35
	}
	if o.Gap == 0 {
		o.Gap = 0.2
	}
	if o.DW1 == 0 {
		o.DW1 = 0.05
	}
	if o.DW2 == 0 {
		o.DW2 = 0.05
	}
	if o.WidthIO == 0 {
		o.WidthIO = 0.5
	}
	if o.Periods == 0 {
		o.Periods = 100
	}
	if o.Pitch == 0 {
		o.Pitch = 0.3
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip_nc"
	}
	if o.W1 < 0 || o.W2 < 0 || o.WidthIO < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "widths must be positive, got %g, %g and %g", o.W1, o.W2, o.WidthIO)
	}
	if o.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "gap must be positive, got %g", o.Gap)
	}
	if o.DW1 < 0 || o.DW2 < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "corrugation widths must be positive, got %g and %g", o.DW1, o.DW2)
	}
	if o.Periods < 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "periods must be at least 1, got %d", o.Periods)
	}
	if o.Pitch < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "pitch must be positive, got %g", o.Pitch)
	}
	return nil
}

// ceilTo rounds x up at the given number of decimal places.
func ceilTo(x float64, decimals int) float64 {
	m := math.Pow(10, float64(decimals))
	return math.Ceil(x*m) / m
}

// floorTo rounds x down at the given number of decimal places.
func floorTo(x float64, decimals int) float64 {
	m := math.Pow(10, float64(decimals))
	return math.Floor(x*m) / m
}

// snapCorrugation quantizes a corrugation width to the fabrication grid:
// the quarter width is rounded to whole nanometers, ties to even, so a
// nominal 0.05 snaps to 0.048.
func snapCorrugation(dw float64) float64 {
	return math.RoundToEven(dw/4*1000) / 1000 * 4
}

// ContraDC returns a contra-directional coupler: two corrugated waveguides
// of widths W1 (top) and W2 (bottom) running side by side for Periods
// grating periods, fanned out with s-bends and tapered up to WidthIO at all
// four ends. The corrugation alternates each half period, anti-phase
// between the arms, with an amplitude of half the snapped corrugation
// width.
//
// Ports follow the add/drop convention: "in" and "through" are the right
// and left ends of the top arm, "add" and "drop" the left and right ends
// of the bottom arm. The result is flattened, so the many internal segment
// references do not survive into the component.
func ContraDC(ctx *cell.Context, opts ContraDCOptions) (*layout.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key, err := cell.NewKey("contra_dc", opts)
	if err != nil {
		return nil, err
	}
	return ctx.Cache.GetOrBuild(key, func() (*layout.Builder, error) {
		return buildContraDC(ctx, opts)
	})
}

func buildContraDC(ctx *cell.Context, o ContraDCOptions) (*layout.Builder, error) {
	// Half periods land on the 1 nm grid; an odd pitch gives the leading
	// half period the extra nanometer.
	lengthA := ceilTo(o.Pitch/2, 3)
	lengthB := floorTo(o.Pitch/2, 3)
	profile1 := snapCorrugation(o.DW1) / 2
	profile2 := snapCorrugation(o.DW2) / 2

	top, err := contraDCTopArm(ctx, o, lengthA, lengthB, profile1)
	if err != nil {
		return nil, err
	}
	bot, err := contraDCBottomArm(ctx, o, lengthA, lengthB, profile2)
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("contra_dc")
	topRef := b.AddRef(top)
	botRef := b.AddRef(bot)

	exports := []struct {
		name string
		ref  *layout.Ref
		port string
	}{
		{"in", topRef, "o2"},
		{"drop", botRef, "o2"},
		{"through", topRef, "o1"},
		{"add", botRef, "o1"},
	}
	for _, e := range exports {
		if err := b.ExportPort(e.name, e.ref, e.port); err != nil {
			return nil, err
		}
	}
	b.Flatten()
	return b, nil
}

// corrugatedChain places 2n alternating segments end to end, each segment's
// left bound snapped to the previous segment's right bound. The first
// segment of every pair sits at baseY+amp, the second at baseY-amp. It
// returns the first and last refs so callers can attach fanouts.
func corrugatedChain(b *layout.Builder, segA, segB *layout.Component, n int, baseY, amp float64) (first, last *layout.Ref) {
	var prev *layout.Ref
	for i := 0; i < n; i++ {
		a := b.AddRef(segA)
		if prev != nil {
			a.SetXMin(prev.XMax())
		}
		a.MoveY(baseY + amp)
		if first == nil {
			first = a
		}

		s := b.AddRef(segB)
		s.SetXMin(a.XMax())
		s.MoveY(baseY - amp)
		prev = s
	}
	return first, prev
}

// contraDCTopArm builds the top waveguide: the corrugated chain around
// y=0, s-bends fanning up on both sides, and tapers from the io width down
// to W1. Arm ports o1 and o2 are the left and right taper mouths.
func contraDCTopArm(ctx *cell.Context, o ContraDCOptions, lengthA, lengthB, profile float64) (*layout.Component, error) {
	segA, err := Straight(ctx, StraightOptions{Length: lengthA, Width: o.W1, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	segB, err := Straight(ctx, StraightOptions{Length: lengthB, Width: o.W1, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	bend, err := BendS(ctx, BendSOptions{DX: fanoutDX, DY: fanoutDY, Width: o.W1, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	taper, err := Taper(ctx, TaperOptions{Length: fanoutTaperLen, Width1: o.WidthIO, Width2: o.W1, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("contra_dc_top")
	first, last := corrugatedChain(b, segA, segB, o.Periods, 0, profile)

	firstIn, err := first.Port("o1")
	if err != nil {
		return nil, err
	}
	inBend := b.AddRef(bend)
	if err := inBend.Connect("o1", firstIn, layout.WithMirror()); err != nil {
		return nil, err
	}
	lastOut, err := last.Port("o2")
	if err != nil {
		return nil, err
	}
	outBend := b.AddRef(bend)
	if err := outBend.Connect("o1", lastOut); err != nil {
		return nil, err
	}
	// Re-center the bend mouths on the uncorrugated waveguide axis.
	inBend.SetYMin(-o.W1 / 2)
	outBend.SetYMin(-o.W1 / 2)

	inMouth, err := inBend.Port("o2")
	if err != nil {
		return nil, err
	}
	inTaper := b.AddRef(taper)
	if err := inTaper.Connect("o2", inMouth); err != nil {
		return nil, err
	}
	outMouth, err := outBend.Port("o2")
	if err != nil {
		return nil, err
	}
	outTaper := b.AddRef(taper)
	if err := outTaper.Connect("o2", outMouth); err != nil {
		return nil, err
	}

	if err := b.ExportPort("o1", inTaper, "o1"); err != nil {
		return nil, err
	}
	if err := b.ExportPort("o2", outTaper, "o1"); err != nil {
		return nil, err
	}
	return b.Finalize()
}

// contraDCBottomArm builds the bottom waveguide below the coupling gap,
// with s-bends fanning down on both sides and tapers from W2 up to the io
// width. Arm ports o1 and o2 are the left and right taper mouths.
func contraDCBottomArm(ctx *cell.Context, o ContraDCOptions, lengthA, lengthB, profile float64) (*layout.Component, error) {
	segA, err := Straight(ctx, StraightOptions{Length: lengthA, Width: o.W2, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	segB, err := Straight(ctx, StraightOptions{Length: lengthB, Width: o.W2, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	bend, err := BendS(ctx, BendSOptions{DX: fanoutDX, DY: fanoutDY, Width: o.W2, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}
	taper, err := Taper(ctx, TaperOptions{Length: fanoutTaperLen, Width1: o.W2, Width2: o.WidthIO, CrossSection: o.CrossSection})
	if err != nil {
		return nil, err
	}

	b := ctx.NewBuilder("contra_dc_bot")
	base := -(o.Gap + o.W1/2 + o.W2/2)
	// Anti-phase with the top arm: the first half period dips down.
	first, last := corrugatedChain(b, segA, segB, o.Periods, base, -profile)

	firstIn, err := first.Port("o1")
	if err != nil {
		return nil, err
	}
	inBend := b.AddRef(bend)
	if err := inBend.Connect("o2", firstIn); err != nil {
		return nil, err
	}
	lastOut, err := last.Port("o2")
	if err != nil {
		return nil, err
	}
	outBend := b.AddRef(bend)
	if err := outBend.Connect("o1", lastOut, layout.WithMirror()); err != nil {
		return nil, err
	}
	// Undo the corrugation offset so both mouths sit on the axis at base.
	inBend.MoveY(profile)
	outBend.MoveY(-profile)

	inMouth, err := inBend.Port("o1")
	if err != nil {
		return nil, err
	}
	inTaper := b.AddRef(taper)
	if err := inTaper.Connect("o1", inMouth); err != nil {
		return nil, err
	}
	outMouth, err := outBend.Port("o2")
	if err != nil {
		return nil, err
	}
	outTaper := b.AddRef(taper)
	if err := outTaper.Connect("o1", outMouth); err != nil {
		return nil, err
	}

	if err := b.ExportPort("o1", inTaper, "o2"); err != nil {
		return nil, err
	}
	if err := b.ExportPort("o2", outTaper, "o2"); err != nil {
		return nil, err
	}
	return b.Finalize()
}

func contraDCFactory() Factory {
	return Factory{
		Name:        "contra_dc",
		Description: "Contra-directional coupler with corrugated waveguides",
		Defaults: func() any {
			o := ContraDCOptions{}
			_ = o.ValidateAndSetDefaults()
			return o
		},
		Build: func(ctx *cell.Context, params map[string]any) (*layout.Component, error) {
			var o ContraDCOptions
			if err := decodeParams(params, &o); err != nil {
				return nil, err
			}
			return ContraDC(ctx, o)
		},
	}
}
