package geom

import "math"

// Bezier samples a cubic Bezier curve through the four control points at n
// evenly spaced parameter values, endpoints included. n < 2 is clamped to 2.
func Bezier(p0, p1, p2, p3 Point, n int) []Point {
	if n < 2 {
		n = 2
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		u := 1 - t
		a := u * u * u
		b := 3 * u * u * t
		c := 3 * u * t * t
		d := t * t * t
		out[i] = Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		}
	}
	return out
}

// Arc samples a circular arc about center from startDeg to endDeg at n
// evenly spaced angles, endpoints included. n < 2 is clamped to 2.
func Arc(center Point, radius, startDeg, endDeg float64, n int) []Point {
	if n < 2 {
		n = 2
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		a := startDeg + (endDeg-startDeg)*float64(i)/float64(n-1)
		rad := a * math.Pi / 180
		out[i] = Point{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad),
		}
	}
	return out
}
