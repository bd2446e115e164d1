// Package layout implements the two-phase component model: a mutable
// Builder accumulates geometry, ports, and references to already-frozen
// child components, and Finalize freezes it into an immutable Component
// that can be shared, referenced, and serialized safely.
//
// During the build phase, AddRef returns a Ref handle that supports
// movement (Move, Rotate, mirroring, bounding-box snapping) and Connect,
// which aligns one of the child's ports antiparallel onto a target port.
// Once a Builder is finalized the Component never changes: every accessor
// returns copies or frozen views, so a Component held by the cell cache
// can be referenced from any number of parents concurrently.
package layout
