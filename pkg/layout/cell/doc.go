// Package cell provides the memoizing cache that guarantees one frozen
// Component per factory-and-parameters key, and the Context that carries
// the cache, PDK, and geometry kernel through component factories.
//
// A Key canonicalizes parameters to sorted-key JSON, so any two parameter
// sets that serialize identically share one cell. GetOrBuild runs the
// build function at most once per key process-wide, even under
// concurrency; every caller receives the same immutable instance. Build
// errors are never cached, so a failed key can be retried.
package cell
