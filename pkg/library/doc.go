// Package library persists built designs as records.
//
// # Overview
//
// A [Record] captures one build: the factory and canonical parameters that
// produced it, the content digest, and the serialized design. Records are
// what the API serves and what `maskforge build --store` writes.
//
// # Backends
//
//   - [NewFileStore]: one JSON file per record, for CLI usage
//   - [NewMongoStore]: shared MongoDB collection, for server deployments
//
// Both implement [Store]. Lookups of unknown IDs return a NOT_FOUND error
// rather than a zero record, so HTTP handlers can map them to 404 directly.
//
// # Identity
//
// Record IDs are uuids assigned at creation. The digest identifies the
// component contents; two records can share a digest when the same
// component was stored twice.
package library
