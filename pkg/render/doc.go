// Package render provides visualization rendering for built components.
//
// # Overview
//
// This package is an umbrella for the two renderers:
//
//   - Mask geometry (in [mask] subpackage): flattened per-layer polygons
//     with port markers, as SVG
//   - Hierarchy diagrams (in [nodelink] subpackage): the cell reference
//     graph of a design, as Graphviz DOT or SVG
//
// # Mask Geometry
//
// The [mask] subpackage draws what would be fabricated: every polygon of
// the flattened component, grouped and colored by layer, with the cell's
// ports marked on top.
//
//	svg := mask.RenderSVG(comp, mask.WithScale(25))
//
// # Hierarchy Diagrams
//
// The [nodelink] subpackage draws how a design is composed: one node per
// cell, one arrow per parent/child relation, annotated with instance
// counts.
//
//	dot := nodelink.ToDOT(design, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// [mask]: github.com/maskforge/maskforge/pkg/render/mask
// [nodelink]: github.com/maskforge/maskforge/pkg/render/nodelink
package render
