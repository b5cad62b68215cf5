// Package render turns positioned tree documents into visual outputs.
//
// # Overview
//
// Two rendering paths are provided:
//
//   - [RenderSVG] draws the document directly as a standalone SVG. This
//     is the default path: fast, dependency-free, and faithful to the
//     computed positions.
//   - [ToDOT] plus [RenderDOTSVG]/[RenderDOTPNG] go through Graphviz
//     with pinned node positions, for users who want DOT output or
//     Graphviz styling.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg).
//
//	svg := render.RenderSVG(doc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Direct SVG
//
// Rendering is configured with functional options:
//
//	svg := render.RenderSVG(doc,
//	    render.WithScale(100),
//	    render.WithoutLabels(),
//	)
//
// Terminal nodes (complete words in a trie) are drawn filled; other
// nodes are white circles.
package render
