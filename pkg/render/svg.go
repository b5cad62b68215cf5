package render

import (
	"bytes"
	"fmt"

	"github.com/wordgrove/wordgrove/pkg/graph"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	margin     float64
	nodeRadius float64
	fontSize   float64
	showLabels bool
	showEdges  bool
}

// WithScale sets how many pixels one layout unit maps to (default 80).
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithMargin sets the frame margin in pixels (default 40).
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithNodeRadius sets the node circle radius in pixels (default 16).
func WithNodeRadius(radius float64) SVGOption {
	return func(r *svgRenderer) { r.nodeRadius = radius }
}

// WithoutLabels suppresses node labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// WithoutEdges suppresses parent-child edges.
func WithoutEdges() SVGOption { return func(r *svgRenderer) { r.showEdges = false } }

// RenderSVG renders a positioned tree document as a standalone SVG.
// Terminal nodes are filled to stand out; regular nodes stay white.
// The output can be converted with [ToPDF] or [ToPNG].
func RenderSVG(doc graph.Document, opts ...SVGOption) []byte {
	r := svgRenderer{
		scale:      80,
		margin:     40,
		nodeRadius: 16,
		fontSize:   14,
		showLabels: true,
		showEdges:  true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	// Map layout units into pixel space with the origin at the top-left
	// corner of the frame. Projected coordinates can be negative.
	px := func(x float64) float64 { return (x-doc.Bounds.MinX)*r.scale + r.margin }
	py := func(y float64) float64 { return (y-doc.Bounds.MinY)*r.scale + r.margin }

	width := doc.Bounds.Width()*r.scale + 2*r.margin
	height := doc.Bounds.Height()*r.scale + 2*r.margin

	pos := make(map[int][2]float64, len(doc.Nodes))
	for _, n := range doc.Nodes {
		pos[n.ID] = [2]float64{px(n.X), py(n.Y)}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.showEdges {
		for _, e := range doc.Edges {
			from, to := pos[e.From], pos[e.To]
			fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#94a3b8" stroke-width="1.5"/>`+"\n",
				from[0], from[1], to[0], to[1])
		}
	}

	for _, n := range doc.Nodes {
		p := pos[n.ID]
		fill := "white"
		if n.Terminal {
			fill = "#fbbf24"
		}
		fmt.Fprintf(&buf, `  <circle id="node-%d" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#334155" stroke-width="1.5"/>`+"\n",
			n.ID, p[0], p[1], r.nodeRadius, fill)
	}

	if r.showLabels {
		for _, n := range doc.Nodes {
			if n.Label == "" {
				continue
			}
			p := pos[n.ID]
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" font-family="monospace" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
				p[0], p[1], r.fontSize, escapeXML(n.Label))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
