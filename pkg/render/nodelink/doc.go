// Package nodelink renders design hierarchies as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz: one
// node per cell, one arrow per parent/child relation. It complements the
// geometry renderer in [mask] for cases where the composition of a design
// matters more than its polygons.
//
// # Usage
//
// Convert a design to DOT format, then render to SVG:
//
//	d := netlist.FromComponent(comp)
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include polygon and port counts.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes. The top cell gets a heavier outline, and an edge that stands
// for several instances carries an "xN" count label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [mask]: github.com/maskforge/maskforge/pkg/render/mask
package nodelink
