// Package geom provides the 2D geometric primitives the layout engine is
// built on: points, axis-aligned bounding rectangles, polygons, and the
// affine transform used to place cell references.
//
// Transforms are restricted to the group a layout instance can occupy:
// translation, rotation, and an optional mirror. The full form is
//
//	p -> R(rotation) * M * p + (dx, dy)
//
// where M reflects across the x-axis when the mirror flag is set. The group
// is closed under composition and inversion, which is what the connection
// algebra relies on.
//
// All angles are degrees. Orientations are normalized to [0, 360).
package geom
