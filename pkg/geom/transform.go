package geom

import (
	"fmt"
	"math"
)

// Transform is the placement transform of a layout instance: an optional
// mirror across the x-axis, followed by a rotation, followed by a
// translation.
//
//	p -> R(Rotation) * M * p + (DX, DY)
//
// Rotation is in degrees. The zero value is the identity.
type Transform struct {
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Rotation float64 `json:"rotation"`
	Reflect  bool    `json:"reflect,omitempty"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{}
}

// Translate returns a pure translation.
func Translate(dx, dy float64) Transform {
	return Transform{DX: dx, DY: dy}
}

// Rotate returns a rotation about the origin.
func Rotate(degrees float64) Transform {
	return Transform{Rotation: NormalizeAngle(degrees)}
}

// RotateAbout returns a rotation about an arbitrary center.
func RotateAbout(degrees float64, center Point) Transform {
	// T(c) * R * T(-c)
	r := Rotate(degrees)
	d := center.Sub(r.apply(center))
	r.DX = d.X
	r.DY = d.Y
	return r
}

// ReflectX returns a mirror across the x-axis.
func ReflectX() Transform {
	return Transform{Reflect: true}
}

// ReflectAbout returns a mirror across the line through p at the given
// angle. Used when a connection requests mirroring about a port's axis.
func ReflectAbout(p Point, degrees float64) Transform {
	// T(p) * R(a) * M * R(-a) * T(-p)
	t := Rotate(degrees).Compose(ReflectX()).Compose(Rotate(-degrees))
	d := p.Sub(t.apply(p))
	t.DX = d.X
	t.DY = d.Y
	return t
}

// apply maps a point through the transform.
func (t Transform) apply(p Point) Point {
	x, y := p.X, p.Y
	if t.Reflect {
		y = -y
	}
	sin, cos := sincosd(t.Rotation)
	return Point{
		X: cos*x - sin*y + t.DX,
		Y: sin*x + cos*y + t.DY,
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	return t.apply(p)
}

// ApplyAngle maps an orientation (degrees) through the transform's linear
// part. A mirror flips the angle before the rotation is added.
func (t Transform) ApplyAngle(degrees float64) float64 {
	if t.Reflect {
		return NormalizeAngle(t.Rotation - degrees)
	}
	return NormalizeAngle(t.Rotation + degrees)
}

// Compose returns the transform equivalent to applying u first, then t.
func (t Transform) Compose(u Transform) Transform {
	rot := t.Rotation + u.Rotation
	if t.Reflect {
		rot = t.Rotation - u.Rotation
	}
	d := t.apply(Point{X: u.DX, Y: u.DY})
	return Transform{
		DX:       d.X,
		DY:       d.Y,
		Rotation: NormalizeAngle(rot),
		Reflect:  t.Reflect != u.Reflect,
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := Transform{Reflect: t.Reflect}
	if t.Reflect {
		// (R(a)M)^-1 = M R(-a) = R(a) M
		inv.Rotation = NormalizeAngle(t.Rotation)
	} else {
		inv.Rotation = NormalizeAngle(-t.Rotation)
	}
	d := inv.apply(Point{X: t.DX, Y: t.DY})
	inv.DX = -d.X
	inv.DY = -d.Y
	return inv
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t.DX == 0 && t.DY == 0 && t.Rotation == 0 && !t.Reflect
}

// String renders a compact human-readable form.
func (t Transform) String() string {
	s := fmt.Sprintf("(%g, %g) rot %g", t.DX, t.DY, t.Rotation)
	if t.Reflect {
		s += " mirror"
	}
	return s
}

// NormalizeAngle maps an angle in degrees onto [0, 360).
func NormalizeAngle(degrees float64) float64 {
	m := math.Mod(degrees, 360)
	if m < 0 {
		m += 360
	}
	if m == 360 || m == 0 {
		return 0
	}
	return m
}

// sincosd computes sin and cos of an angle in degrees. Quadrant angles
// return exact values so rectilinear layouts stay exact under repeated
// composition.
func sincosd(degrees float64) (sin, cos float64) {
	switch NormalizeAngle(degrees) {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(degrees * math.Pi / 180)
}
