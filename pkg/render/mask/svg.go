package mask

import (
	"bytes"
	"fmt"

	"github.com/maskforge/maskforge/pkg/geom"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// palette supplies layer fills in layer order; overrides go through
// [WithLayerColor].
var palette = []string{
	"#4f81bd", // blue
	"#c0504d", // red
	"#9bbb59", // green
	"#8064a2", // purple
	"#f79646", // orange
	"#4bacc6", // teal
}

const portColor = "#d62728"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	margin     float64
	background string
	showPorts  bool
	colors     map[pdk.Layer]string
}

// WithScale sets the pixel density in pixels per micron.
func WithScale(pixelsPerMicron float64) SVGOption {
	return func(r *svgRenderer) { r.scale = pixelsPerMicron }
}

// WithMargin sets the frame margin around the geometry, in microns.
func WithMargin(microns float64) SVGOption {
	return func(r *svgRenderer) { r.margin = microns }
}

// WithBackground sets the background fill color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithLayerColor overrides the palette color for one layer.
func WithLayerColor(layer pdk.Layer, color string) SVGOption {
	return func(r *svgRenderer) { r.colors[layer] = color }
}

// WithoutPorts suppresses the port markers.
func WithoutPorts() SVGOption {
	return func(r *svgRenderer) { r.showPorts = false }
}

// RenderSVG draws the flattened geometry of a component. Polygons are
// grouped per layer, ports are marked on top unless disabled.
func RenderSVG(c *layout.Component, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	pay := c.FlattenedPayload()

	box := pay.Bounds()
	for _, p := range c.Ports() {
		box = box.Expand(p.Position)
	}
	if box.Empty() {
		box = geom.Rect{Max: geom.Pt(1, 1)}
	}

	vp := viewport{scale: r.scale, margin: r.margin, minX: box.Min.X, maxY: box.Max.Y}
	frameW := (box.Width() + 2*r.margin) * r.scale
	frameH := (box.Height() + 2*r.margin) * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		frameW, frameH, frameW, frameH)
	fmt.Fprintf(&buf, "  <rect width=\"100%%\" height=\"100%%\" fill=%q/>\n", r.background)

	for i, layer := range pay.Layers() {
		color := r.colorFor(layer, i)
		// Slash-free id: "4/0" is not a valid XML id token.
		fmt.Fprintf(&buf, "  <g id=\"layer-%d-%d\" fill=%q fill-opacity=\"0.55\" stroke=%q stroke-width=\"1\">\n",
			layer.Number, layer.Datatype, color, color)
		for _, poly := range pay.Polygons(layer) {
			writePath(&buf, vp, poly)
		}
		buf.WriteString("  </g>\n")
	}

	if r.showPorts {
		for _, p := range c.Ports() {
			writePort(&buf, vp, p)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		scale:      20,
		margin:     2,
		background: "#ffffff",
		showPorts:  true,
		colors:     make(map[pdk.Layer]string),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) colorFor(layer pdk.Layer, index int) string {
	if c, ok := r.colors[layer]; ok {
		return c
	}
	return palette[index%len(palette)]
}

// viewport maps micron coordinates to pixels, flipping the y axis.
type viewport struct {
	scale  float64
	margin float64
	minX   float64
	maxY   float64
}

func (v viewport) x(x float64) float64 { return (x - v.minX + v.margin) * v.scale }
func (v viewport) y(y float64) float64 { return (v.maxY - y + v.margin) * v.scale }

func writePath(buf *bytes.Buffer, vp viewport, poly geom.Polygon) {
	buf.WriteString(`    <path d="`)
	for i, p := range poly {
		cmd := byte('L')
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(buf, "%c%.2f %.2f ", cmd, vp.x(p.X), vp.y(p.Y))
	}
	buf.WriteString("Z\"/>\n")
}

func writePort(buf *bytes.Buffer, vp viewport, p layout.Port) {
	// Face line across the width, tick along the outward normal.
	dir := geom.Rotate(p.Orientation).Apply(geom.Pt(1, 0))
	half := geom.Pt(-dir.Y, dir.X).Scale(p.Width / 2)
	a := p.Position.Add(half)
	b := p.Position.Sub(half)
	tip := p.Position.Add(dir.Scale(p.Width / 4))

	fmt.Fprintf(buf, "  <g class=\"port\" stroke=%q stroke-width=\"2\" fill=\"none\">\n", portColor)
	fmt.Fprintf(buf, "    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\"/>\n",
		vp.x(a.X), vp.y(a.Y), vp.x(b.X), vp.y(b.Y))
	fmt.Fprintf(buf, "    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\"/>\n",
		vp.x(p.Position.X), vp.y(p.Position.Y), vp.x(tip.X), vp.y(tip.Y))
	buf.WriteString("  </g>\n")
	fmt.Fprintf(buf, "  <text x=\"%.2f\" y=\"%.2f\" font-size=\"10\" fill=%q>%s</text>\n",
		vp.x(p.Position.X)+4, vp.y(p.Position.Y)-4, portColor, p.Name)
}
