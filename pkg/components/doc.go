// Package components provides the built-in component factories: primitive
// shapes (rectangle, compass), waveguide elements (straight, taper,
// s-bend, circular bend), and composites (asymmetric coupler,
// contra-directional coupler).
//
// Every factory follows the same shape: a typed options struct with
// ValidateAndSetDefaults, a function taking a cell.Context plus the
// options, and memoization through the context's cell cache, so repeated
// calls with equivalent options return the same frozen component. The
// Registry exposes the factories by name for the CLI and the API, with
// parameter decoding that rejects unknown keys.
package components
