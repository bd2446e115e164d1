// Package pkg provides the core libraries for Maskforge photonic layout.
//
// # Overview
//
// Maskforge builds photonic mask layouts from parametric cell factories.
// Every cell is built once per parameter set, frozen, and shared by
// reference, so a design is a DAG of immutable components rather than a
// soup of copied polygons. The pkg directory is organized into four main
// areas:
//
//  1. Geometry ([geom], [kernel]) - points, transforms, polygons, extrusion
//  2. Layout ([layout], [layout/cell], [components], [pdk]) - cells, ports,
//     references, memoization, foundry kits
//  3. Output ([netlist], [render]) - design serialization and rendering
//  4. Infrastructure ([pipeline], [artifact], [library], [observability],
//     [errors], [httputil]) - orchestration, caching, persistence
//
// # Architecture
//
// The typical data flow through Maskforge:
//
//	Factory name + parameters
//	         ↓
//	    [components] package (parametric cell factories)
//	         ↓
//	    [layout/cell] package (canonical key → memoized frozen cell)
//	         ↓
//	    [netlist] package (reference hierarchy as JSON)
//	         ↓
//	    [render] package (mask SVG, hierarchy diagrams)
//
// # Quick Start
//
// Build a component and render its mask:
//
//	import (
//	    "github.com/maskforge/maskforge/pkg/components"
//	    "github.com/maskforge/maskforge/pkg/layout/cell"
//	    "github.com/maskforge/maskforge/pkg/render/mask"
//	)
//
//	// 1. Create a build context (cache, PDK, geometry kernel)
//	ctx := cell.NewContext()
//
//	// 2. Build a cell; repeat calls with equal parameters hit the cache
//	comp, _ := components.Straight(ctx, components.StraightOptions{Length: 25})
//
//	// 3. Render the flattened mask geometry
//	svg := mask.RenderSVG(comp, mask.WithScale(20))
//
// # Main Packages
//
// ## Geometry
//
// [geom] - Planar geometry: points, rectangles, polygons, paths, and
// affine transforms restricted to the layout subgroup (rotation,
// translation, optional mirror). Comparisons go through a shared
// tolerance so nanometer noise never breaks equality.
//
// [kernel] - Geometry kernel interface plus the pure-Go software
// implementation: path-to-polygon extrusion, cross-section extrusion
// with cladding and parallel sections, and payload merging.
//
// ## Layout
//
// [layout] - Components, ports, references, and the builder. A Builder
// accumulates geometry and ports, then Finalize freezes it into an
// immutable Component. References place frozen children under affine
// transforms; Connect aligns ports antiparallel with layer and width
// checks.
//
// [layout/cell] - Cell memoization. A Key canonicalizes a factory name
// plus its parameters; the Cache guarantees at most one build per key
// even under concurrent access, and stamps every cell with its canonical
// name (factory plus parameter digest).
//
// [components] - The built-in factory registry: straight, bends, tapers,
// couplers, and a contra-directional coupler, each a thin options struct
// over the builder with validated defaults.
//
// [pdk] - Process design kits: named layers and cross-section profiles
// loaded from TOML, an embedded generic kit for tests and demos, and
// remote kit fetching over HTTP.
//
// ## Output
//
// [netlist] - Design serialization: the cell hierarchy, instances with
// their transforms, ports, and geometry digests as deterministic JSON,
// with import, export, and validation.
//
// [render/mask] - Flattened per-layer mask geometry as SVG with port
// markers.
//
// [render/nodelink] - Hierarchy diagrams of the cell reference graph as
// Graphviz DOT, rendered to SVG in process.
//
// ## Infrastructure
//
// [pipeline] - The staged build → netlist → render pipeline shared by
// CLI and API. Each stage is cached by content-addressed key; Runner
// reports per-stage timings and cache hits.
//
// [artifact] - Derived artifact caches keyed by digest: filesystem,
// Redis, and null backends, key scoping per kit, and an instrumented
// decorator that feeds the observability hooks.
//
// [library] - Persisted design records with filesystem and MongoDB
// stores.
//
// [observability] - Process-wide hook points for cache and pipeline
// events; the API bridges them into Prometheus metrics.
//
// [errors] - Coded errors (validation, configuration, not found) that
// survive wrapping, so transport layers can map them to exit codes and
// HTTP statuses.
//
// [httputil] - HTTP fetching with retries, timeouts, and on-disk
// response caching, used for remote PDK tables.
//
// # Common Workflows
//
// Load a foundry kit and build against it:
//
//	kit, _ := pdk.Load("examples/pdk/sin220.toml")
//	ctx := cell.NewContext()
//	ctx.PDK = kit
//	comp, _ := components.Straight(ctx, components.StraightOptions{})
//
// Compose cells by connecting ports:
//
//	b := layout.NewBuilder("mzi_arm")
//	s := b.AddRef(straight)
//	bend := b.AddRef(bendCircular)
//	_ = bend.Connect("o1", mustPort(s, "o2"))
//	comp, _ := b.Finalize()
//
// Run the full pipeline with artifact caching:
//
//	cache, _ := artifact.NewFileCache(dir)
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Factory: "straight",
//	    Params:  map[string]any{"length": 25.0},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// Persist a design:
//
//	store, _ := library.NewFileStore(dir)
//	rec := library.NewRecord(result.Key, result.Design)
//	_ = store.Put(ctx, rec)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis/Mongo integration tests
//
// [geom]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/geom
// [kernel]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/kernel
// [layout]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/layout
// [layout/cell]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/layout/cell
// [components]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/components
// [pdk]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/pdk
// [netlist]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/netlist
// [render]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/render
// [render/mask]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/render/mask
// [render/nodelink]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/pipeline
// [artifact]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/artifact
// [library]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/library
// [observability]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/maskforge/maskforge/pkg/httputil
package pkg
