package layout

import (
	"math"
	"testing"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
)

func TestRefMovement(t *testing.T) {
	child := straight(t, "wg", 10, 0.5)

	t.Run("move", func(t *testing.T) {
		b := NewBuilder("parent")
		r := b.AddRef(child).Move(3, -2)
		p, _ := r.Port("o1")
		if !geom.ClosePoints(p.Position, geom.Pt(3, -2)) {
			t.Errorf("o1 at %v, want (3, -2)", p.Position)
		}
	})

	t.Run("rotate about origin", func(t *testing.T) {
		b := NewBuilder("parent")
		r := b.AddRef(child).Rotate(90)
		p, _ := r.Port("o2")
		if !geom.ClosePoints(p.Position, geom.Pt(0, 10)) {
			t.Errorf("o2 at %v, want (0, 10)", p.Position)
		}
		if p.Orientation != 90 {
			t.Errorf("o2 orientation = %g, want 90", p.Orientation)
		}
	})

	t.Run("chained moves accumulate", func(t *testing.T) {
		b := NewBuilder("parent")
		r := b.AddRef(child).MoveX(5).MoveY(2).Rotate(180)
		p, _ := r.Port("o1")
		if !geom.ClosePoints(p.Position, geom.Pt(-5, -2)) {
			t.Errorf("o1 at %v, want (-5, -2)", p.Position)
		}
	})

	t.Run("mirror across x axis", func(t *testing.T) {
		b := NewBuilder("parent")
		r := b.AddRef(child).Move(0, 3).MirrorAcrossX()
		p, _ := r.Port("o1")
		if !geom.ClosePoints(p.Position, geom.Pt(0, -3)) {
			t.Errorf("o1 at %v, want (0, -3)", p.Position)
		}
		if p.Orientation != 180 {
			t.Errorf("o1 orientation = %g, want 180", p.Orientation)
		}
	})

	t.Run("mirror across y axis", func(t *testing.T) {
		b := NewBuilder("parent")
		r := b.AddRef(child).MirrorAcrossY()
		p, _ := r.Port("o2")
		if !geom.ClosePoints(p.Position, geom.Pt(-10, 0)) {
			t.Errorf("o2 at %v, want (-10, 0)", p.Position)
		}
		if p.Orientation != 180 {
			t.Errorf("o2 orientation = %g, want 180", p.Orientation)
		}
	})
}

func TestRefBBoxSnapping(t *testing.T) {
	child := straight(t, "wg", 10, 0.5)
	b := NewBuilder("parent")

	r := b.AddRef(child)
	if got := r.XMin(); got != 0 {
		t.Errorf("XMin() = %g, want 0", got)
	}
	if got := r.XMax(); got != 10 {
		t.Errorf("XMax() = %g, want 10", got)
	}

	r.SetXMin(4)
	if got := r.XMin(); !geom.Close(got, 4) {
		t.Errorf("XMin() after SetXMin(4) = %g", got)
	}
	r.SetYMin(-0.225)
	if got := r.YMin(); !geom.Close(got, -0.225) {
		t.Errorf("YMin() after SetYMin = %g", got)
	}
	r.SetXMax(0)
	if got := r.XMax(); !geom.Close(got, 0) {
		t.Errorf("XMax() after SetXMax(0) = %g", got)
	}
	r.SetX(5)
	if got := r.X(); !geom.Close(got, 5) {
		t.Errorf("X() after SetX(5) = %g", got)
	}
	r.SetY(1)
	if got := r.Y(); !geom.Close(got, 1) {
		t.Errorf("Y() after SetY(1) = %g", got)
	}
}

func TestChainBySnapping(t *testing.T) {
	child := straight(t, "wg", 3, 0.5)
	b := NewBuilder("parent")

	prev := b.AddRef(child)
	for i := 0; i < 3; i++ {
		next := b.AddRef(child)
		next.SetXMin(prev.XMax())
		prev = next
	}
	if got := prev.XMax(); !geom.Close(got, 12) {
		t.Errorf("chain ends at %g, want 12", got)
	}
}

func TestConnect(t *testing.T) {
	child := straight(t, "wg", 10, 0.5)

	t.Run("straight line", func(t *testing.T) {
		b := NewBuilder("parent")
		a := b.AddRef(child)
		c := b.AddRef(child)

		ap, _ := a.Port("o2")
		if err := c.Connect("o1", ap); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		got, _ := c.Port("o1")
		if got.Position.Distance(geom.Pt(10, 0)) > 1e-9 {
			t.Errorf("o1 at %v, want (10, 0)", got.Position)
		}
		if !geom.CloseAngles(got.Orientation, 180) {
			t.Errorf("o1 orientation = %g, want 180", got.Orientation)
		}
		far, _ := c.Port("o2")
		if far.Position.Distance(geom.Pt(20, 0)) > 1e-9 {
			t.Errorf("o2 at %v, want (20, 0)", far.Position)
		}
	})

	t.Run("rotated target", func(t *testing.T) {
		b := NewBuilder("parent")
		a := b.AddRef(child).Rotate(90).Move(2, 1)
		c := b.AddRef(child)

		ap, _ := a.Port("o2") // (2, 11) facing 90
		if err := c.Connect("o1", ap); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		got, _ := c.Port("o1")
		if got.Position.Distance(geom.Pt(2, 11)) > 1e-9 {
			t.Errorf("o1 at %v, want (2, 11)", got.Position)
		}
		if !geom.CloseAngles(got.Orientation, 270) {
			t.Errorf("o1 orientation = %g, want 270 (antiparallel to 90)", got.Orientation)
		}
	})

	t.Run("moved ref reconnects from current pose", func(t *testing.T) {
		b := NewBuilder("parent")
		a := b.AddRef(child)
		c := b.AddRef(child).Move(50, 50).Rotate(33)

		ap, _ := a.Port("o2")
		if err := c.Connect("o1", ap); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		got, _ := c.Port("o1")
		if got.Position.Distance(geom.Pt(10, 0)) > 1e-9 {
			t.Errorf("o1 at %v, want (10, 0)", got.Position)
		}
		if !geom.CloseAngles(got.Orientation, 180) {
			t.Errorf("o1 orientation = %g, want 180", got.Orientation)
		}
	})

	t.Run("unknown port", func(t *testing.T) {
		b := NewBuilder("parent")
		a := b.AddRef(child)
		c := b.AddRef(child)

		ap, _ := a.Port("o2")
		if err := c.Connect("nope", ap); !errors.Is(err, errors.ErrCodePortUnknown) {
			t.Errorf("Connect(unknown) error = %v, want port unknown", err)
		}
	})
}

// elbow builds a component whose second port is off-axis, so mirrored
// connects produce a visibly different pose.
func elbow(t *testing.T) *Component {
	t.Helper()
	b := NewBuilder("elbow")
	mustAddPort(t, b, Port{Name: "o1", Position: geom.Pt(0, 0), Orientation: 180, Width: 0.5, Layer: wg})
	mustAddPort(t, b, Port{Name: "o2", Position: geom.Pt(5, 2), Orientation: 90, Width: 0.5, Layer: wg})
	c, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return c
}

func TestConnectWithMirror(t *testing.T) {
	target := Port{Name: "t", Position: geom.Pt(0, 0), Orientation: 0, Width: 0.5, Layer: wg}

	plain := NewBuilder("plain")
	r := plain.AddRef(elbow(t))
	if err := r.Connect("o1", target); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	p2, _ := r.Port("o2")
	if p2.Position.Distance(geom.Pt(5, 2)) > 1e-9 || !geom.CloseAngles(p2.Orientation, 90) {
		t.Fatalf("unmirrored o2 = %v/%g, want (5,2)/90", p2.Position, p2.Orientation)
	}

	mirrored := NewBuilder("mirrored")
	m := mirrored.AddRef(elbow(t))
	if err := m.Connect("o1", target, WithMirror()); err != nil {
		t.Fatalf("Connect(WithMirror) error = %v", err)
	}
	p1, _ := m.Port("o1")
	if p1.Position.Distance(geom.Pt(0, 0)) > 1e-9 || !geom.CloseAngles(p1.Orientation, 180) {
		t.Errorf("mirrored o1 = %v/%g, want (0,0)/180", p1.Position, p1.Orientation)
	}
	p2, _ = m.Port("o2")
	if p2.Position.Distance(geom.Pt(5, -2)) > 1e-9 {
		t.Errorf("mirrored o2 at %v, want (5, -2)", p2.Position)
	}
	if !geom.CloseAngles(p2.Orientation, 270) {
		t.Errorf("mirrored o2 orientation = %g, want 270", p2.Orientation)
	}
}

func TestConnectLayerMismatch(t *testing.T) {
	b := NewBuilder("parent")

	mb := NewBuilder("metal_stub")
	mustAddPort(t, mb, Port{Name: "m1", Position: geom.Pt(0, 0), Orientation: 180, Width: 0.5, Layer: metal})
	mc, err := mb.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	a := b.AddRef(straight(t, "wg", 10, 0.5))
	m := b.AddRef(mc)
	before := m.Transform()

	ap, _ := a.Port("o2")
	if err := m.Connect("m1", ap); !errors.Is(err, errors.ErrCodePortLayer) {
		t.Fatalf("Connect() error = %v, want port layer mismatch", err)
	}
	if m.Transform() != before {
		t.Error("failed Connect moved the ref")
	}
}

func TestConnectWidthMismatchRecordsDiagnostic(t *testing.T) {
	narrow := straight(t, "narrow", 10, 0.45)
	wide := straight(t, "wide", 10, 1.0)

	b := NewBuilder("parent")
	a := b.AddRef(narrow)
	c := b.AddRef(wide)

	ap, _ := a.Port("o2")
	if err := c.Connect("o1", ap); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	diags := b.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning", diags[0].Severity)
	}
	if diags[0].Code != errors.ErrCodePort {
		t.Errorf("diagnostic code = %s, want %s", diags[0].Code, errors.ErrCodePort)
	}

	// The geometric result stands regardless.
	got, _ := c.Port("o1")
	if got.Position.Distance(geom.Pt(10, 0)) > 1e-9 {
		t.Errorf("o1 at %v, want (10, 0)", got.Position)
	}

	// The warning survives the freeze.
	comp, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	frozen := comp.Diagnostics()
	if len(frozen) != 1 || frozen[0].Code != errors.ErrCodePort {
		t.Errorf("frozen diagnostics = %v, want the width warning", frozen)
	}
}

func TestConnectWidthMismatchSuppressed(t *testing.T) {
	b := NewBuilder("parent")
	a := b.AddRef(straight(t, "narrow", 10, 0.45))
	c := b.AddRef(straight(t, "wide", 10, 1.0))

	ap, _ := a.Port("o2")
	if err := c.Connect("o1", ap, AllowWidthMismatch()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if diags := b.Diagnostics(); len(diags) != 0 {
		t.Errorf("got %d diagnostics, want 0", len(diags))
	}
}

func TestConnectRoundTripTransform(t *testing.T) {
	// Compose with the inverse restores the original pose for arbitrary
	// placement combinations.
	child := straight(t, "wg", 7, 0.5)
	b := NewBuilder("parent")
	r := b.AddRef(child).Move(3, -4).Rotate(123).MirrorAcrossX()

	tr := r.Transform()
	round := tr.Compose(tr.Inverse())
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(7, 0), geom.Pt(1.5, -2.25)} {
		if got := round.Apply(p); got.Distance(p) > 1e-9 {
			t.Errorf("round trip moved %v to %v", p, got)
		}
	}
	if math.Abs(geom.NormalizeAngle(round.ApplyAngle(37))-37) > 1e-9 {
		t.Errorf("round trip angle = %g, want 37", round.ApplyAngle(37))
	}
}
