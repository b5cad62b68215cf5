package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/wordgrove/wordgrove/pkg/graph"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Detailed includes depth and position in node labels.
	// When false, only the node label is shown.
	Detailed bool
}

// ToDOT converts a positioned tree document to Graphviz DOT format.
// Every node carries a pinned position ("x,y!"), so the neato engine
// reproduces the computed layout exactly instead of running its own.
// The resulting DOT string can be rendered with [RenderDOTSVG] or
// [RenderDOTPNG].
//
// Graphviz y grows upward while document y grows downward for the
// top-to-bottom direction, so y is negated on the way out.
func ToDOT(doc graph.Document, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, fixedsize=true, width=0.5];\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		label := n.Label
		if opts.Detailed {
			label = fmt.Sprintf("%s\ndepth %d\n(%.2f, %.2f)", n.Label, n.Depth, n.X, n.Y)
		}
		attrs := fmt.Sprintf("label=%q, pos=\"%.4f,%.4f!\"", label, n.X, -n.Y)
		if n.Terminal {
			attrs += ", fillcolor=gold"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG, normalizeViewBox)
}

// RenderDOTPNG renders a DOT graph to PNG using Graphviz.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG, nil)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg element to a zero-origin
// viewBox with explicit pixel dimensions, which embeds more predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
