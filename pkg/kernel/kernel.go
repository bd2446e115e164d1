// Package kernel defines the geometry engine boundary. Components never
// build polygons directly; they ask a Kernel for primitive shapes and
// extrusions and receive opaque Payload values back. The Software kernel
// implements the interface in pure Go with deterministic float64 math, so
// identical inputs always produce identical payloads.
package kernel

import (
	"math"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// Kernel produces geometry payloads from abstract shape descriptions.
// Implementations must be deterministic and safe for concurrent use.
type Kernel interface {
	// Rectangle returns an axis-aligned rectangle with its lower-left
	// corner at the origin.
	Rectangle(width, height float64, layer pdk.Layer) (Payload, error)

	// ExtrudePath sweeps a constant width along a polyline centerline.
	ExtrudePath(path []geom.Point, width float64, layer pdk.Layer) (Payload, error)

	// ExtrudeCrossSection sweeps a full cross section along a polyline:
	// the core width on the profile's layer, any additional sections at
	// their offsets, and cladding expanded by the cladding offset.
	ExtrudeCrossSection(path []geom.Point, xs pdk.CrossSection) (Payload, error)

	// Union combines two payloads into one.
	Union(a, b Payload) (Payload, error)
}

func errBadWidth(width float64) error {
	return errors.New(errors.ErrCodeKernel, "extrusion width must be positive, got %g", width)
}

func errBadPath(format string, args ...interface{}) error {
	return errors.New(errors.ErrCodeKernel, "invalid path: "+format, args...)
}

func validPath(path []geom.Point) error {
	if len(path) < 2 {
		return errBadPath("need at least 2 points, got %d", len(path))
	}
	for i, p := range path {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return errBadPath("point %d is not finite", i)
		}
	}
	return nil
}
