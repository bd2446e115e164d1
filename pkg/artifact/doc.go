// Package artifact caches derived build outputs across runs.
//
// # Overview
//
// Building a component is deterministic, so everything derived from it
// (netlist JSON, rendered SVG, hierarchy DOT) can be cached under the
// component's canonical digest. This package provides the byte cache the
// pipeline stages write those artifacts through.
//
// # Backends
//
//   - [NewFileCache]: directory of hashed entry files, for CLI usage
//   - [NewRedisCache]: shared Redis backend, for server deployments
//   - [NewNullCache]: no-op, for tests or --no-cache runs
//
// All backends implement [Cache]: Get reports misses through its bool
// result rather than an error, Set takes a TTL (0 means no expiry).
//
// # Keys
//
// A [Keyer] turns a component digest into a namespaced cache key, one
// namespace per artifact kind. [NewScopedKeyer] prepends a tenant prefix
// for shared backends:
//
//	keyer := artifact.NewScopedKeyer(artifact.NewDefaultKeyer(), "team-a:")
//	key := keyer.SVGKey(comp.Key(), 20)
//
// Keys embed a hash of their inputs, so arbitrary digests are safe to use.
package artifact
