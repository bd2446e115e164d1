// Package mask renders flattened component geometry as SVG.
//
// # Overview
//
// The renderer draws every polygon of a component's flattened payload,
// grouped into one <g> element per layer, colored from a fixed palette in
// layer order. Port markers go on top: a face line across the port width,
// a tick pointing along the outward normal, and the port name.
//
// Layout coordinates are microns with y growing upward; the renderer maps
// them to pixels with y growing downward, so the output matches the usual
// top-left SVG convention without a transform attribute.
//
// # Usage
//
//	svg := mask.RenderSVG(comp,
//	    mask.WithScale(25),
//	    mask.WithLayerColor(pdk.Layer{Number: 1}, "#2c3e50"),
//	)
//
// # Options
//
//   - [WithScale]: pixels per micron (default 20)
//   - [WithMargin]: frame margin in microns (default 2)
//   - [WithBackground]: background fill color (default white)
//   - [WithLayerColor]: override the palette for one layer
//   - [WithoutPorts]: suppress port markers
package mask
