package geom

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-360, 0},
		{720.5, 0.5},
		{-0.0, 0},
		{179.5, 179.5},
	}

	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !Close(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   Point
		want Point
	}{
		{
			name: "identity",
			tr:   Identity(),
			in:   Pt(1, 2),
			want: Pt(1, 2),
		},
		{
			name: "translate",
			tr:   Translate(3, -1),
			in:   Pt(1, 2),
			want: Pt(4, 1),
		},
		{
			name: "rotate 90",
			tr:   Rotate(90),
			in:   Pt(1, 0),
			want: Pt(0, 1),
		},
		{
			name: "rotate 180",
			tr:   Rotate(180),
			in:   Pt(2, 1),
			want: Pt(-2, -1),
		},
		{
			name: "mirror across x",
			tr:   ReflectX(),
			in:   Pt(1, 2),
			want: Pt(1, -2),
		},
		{
			name: "mirror then rotate 90",
			tr:   Transform{Rotation: 90, Reflect: true},
			in:   Pt(1, 2),
			want: Pt(2, 1),
		},
		{
			name: "rotate about point fixes it",
			tr:   RotateAbout(37, Pt(2, 3)),
			in:   Pt(2, 3),
			want: Pt(2, 3),
		},
		{
			name: "rotate 90 about (1,0)",
			tr:   RotateAbout(90, Pt(1, 0)),
			in:   Pt(2, 0),
			want: Pt(1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(tt.in)
			if !ClosePoints(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformApplyAngle(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   float64
		want float64
	}{
		{"identity", Identity(), 45, 45},
		{"rotation adds", Rotate(90), 45, 135},
		{"rotation wraps", Rotate(270), 180, 90},
		{"mirror flips", ReflectX(), 45, 315},
		{"mirror flips zero", ReflectX(), 0, 0},
		{"mirror then rotate", Transform{Rotation: 90, Reflect: true}, 30, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.ApplyAngle(tt.in); !CloseAngles(got, tt.want) {
				t.Errorf("ApplyAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// transformSamples is a small basis of transforms covering every
// translation/rotation/mirror combination.
var transformSamples = []Transform{
	Identity(),
	Translate(3, -7),
	Rotate(90),
	Rotate(33.5),
	ReflectX(),
	{DX: 1, DY: 2, Rotation: 270},
	{DX: -4, DY: 0.5, Rotation: 123.4, Reflect: true},
	{DX: 0, DY: -2, Rotation: 180, Reflect: true},
	RotateAbout(45, Pt(1, 1)),
	ReflectAbout(Pt(2, -1), 30),
}

func TestComposeMatchesSequentialApply(t *testing.T) {
	points := []Point{Pt(0, 0), Pt(1, 0), Pt(-2.5, 3.25), Pt(0.1, -0.1)}

	for _, a := range transformSamples {
		for _, b := range transformSamples {
			ab := a.Compose(b)
			for _, p := range points {
				want := a.Apply(b.Apply(p))
				got := ab.Apply(p)
				if !ClosePoints(got, want) {
					t.Fatalf("Compose(%v, %v).Apply(%v) = %v, want %v", a, b, p, got, want)
				}
			}
			wantAngle := a.ApplyAngle(b.ApplyAngle(17))
			if got := ab.ApplyAngle(17); !CloseAngles(got, wantAngle) {
				t.Fatalf("Compose(%v, %v).ApplyAngle(17) = %v, want %v", a, b, got, wantAngle)
			}
		}
	}
}

func TestComposeAssociative(t *testing.T) {
	p := Pt(0.75, -1.5)
	for _, a := range transformSamples {
		for _, b := range transformSamples {
			for _, c := range transformSamples {
				left := a.Compose(b).Compose(c)
				right := a.Compose(b.Compose(c))
				if !ClosePoints(left.Apply(p), right.Apply(p)) {
					t.Fatalf("associativity broken for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	points := []Point{Pt(0, 0), Pt(5, 2), Pt(-1.25, 4.75)}

	for _, tr := range transformSamples {
		id := tr.Compose(tr.Inverse())
		for _, p := range points {
			if got := id.Apply(p); !ClosePoints(got, p) {
				t.Errorf("%v . inverse applied to %v = %v, want unchanged", tr, p, got)
			}
		}
		if got := id.ApplyAngle(42); !CloseAngles(got, 42) {
			t.Errorf("%v . inverse maps angle 42 to %v", tr, got)
		}

		// Inverse on the other side too.
		id = tr.Inverse().Compose(tr)
		for _, p := range points {
			if got := id.Apply(p); !ClosePoints(got, p) {
				t.Errorf("inverse . %v applied to %v = %v, want unchanged", tr, p, got)
			}
		}
	}
}

func TestReflectAbout(t *testing.T) {
	// Points on the mirror line stay fixed.
	line := ReflectAbout(Pt(1, 1), 45)
	on := Pt(2, 2)
	if got := line.Apply(on); !ClosePoints(got, on) {
		t.Errorf("point on mirror line moved: %v -> %v", on, got)
	}

	// A point off the line lands on its mirror image.
	got := line.Apply(Pt(2, 0))
	want := Pt(0, 2)
	if !ClosePoints(got, want) {
		t.Errorf("mirror image = %v, want %v", got, want)
	}

	// Mirroring twice is the identity.
	twice := line.Compose(line)
	p := Pt(-3, 0.5)
	if got := twice.Apply(p); !ClosePoints(got, p) {
		t.Errorf("double mirror moved %v to %v", p, got)
	}
}

func TestQuadrantRotationsExact(t *testing.T) {
	// Quadrant rotations must be exact, not merely within tolerance, so
	// bbox snapping does not drift over long chains.
	p := Rotate(90).Apply(Pt(1, 0))
	if p.X != 0 || p.Y != 1 {
		t.Errorf("Rotate(90).Apply(1,0) = %v, want exactly (0,1)", p)
	}
	p = Rotate(180).Apply(Pt(3, 0))
	if p.X != -3 || p.Y != 0 {
		t.Errorf("Rotate(180).Apply(3,0) = %v, want exactly (-3,0)", p)
	}
}

func TestTransformString(t *testing.T) {
	tr := Transform{DX: 1.5, DY: -2, Rotation: 90, Reflect: true}
	want := "(1.5, -2) rot 90 mirror"
	if got := tr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSincosd(t *testing.T) {
	for deg := -720.0; deg <= 720; deg += 7.5 {
		sin, cos := sincosd(deg)
		rad := deg * math.Pi / 180
		if !Close(sin, math.Sin(rad)) || !Close(cos, math.Cos(rad)) {
			t.Errorf("sincosd(%v) = (%v, %v), want (%v, %v)", deg, sin, cos, math.Sin(rad), math.Cos(rad))
		}
	}
}
