package geom

import "gonum.org/v1/gonum/floats/scalar"

// Tolerance is the absolute spatial tolerance of the engine. Connections
// are solved exactly, so the tolerance only absorbs floating-point error
// accumulated through repeated composition.
const Tolerance = 1e-9

// Close reports whether two scalars agree within Tolerance.
func Close(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Tolerance)
}

// ClosePoints reports whether two points agree within Tolerance per axis.
func ClosePoints(a, b Point) bool {
	return Close(a.X, b.X) && Close(a.Y, b.Y)
}

// CloseAngles reports whether two angles in degrees agree within Tolerance
// on the circle, so 359.9999999999 and 0 compare equal.
func CloseAngles(a, b float64) bool {
	d := NormalizeAngle(a - b)
	return d <= Tolerance || 360-d <= Tolerance
}
