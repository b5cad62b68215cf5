package pipeline

import (
	"fmt"

	"github.com/wordgrove/wordgrove/pkg/graph"
	"github.com/wordgrove/wordgrove/pkg/render"
)

// renderArtifacts renders the document into every requested format.
// docData is the already-serialized document, reused for the json format.
func renderArtifacts(doc graph.Document, docData []byte, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))

	// SVG is the base for the converted formats; render it once.
	var svg []byte
	needsSVG := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(doc)
		}
		return svg
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			out[format] = needsSVG()
		case FormatPNG:
			data, err := render.ToPNG(needsSVG(), opts.Scale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			out[format] = data
		case FormatPDF:
			data, err := render.ToPDF(needsSVG())
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			out[format] = data
		case FormatDOT:
			out[format] = []byte(render.ToDOT(doc, render.DOTOptions{Detailed: opts.Detailed}))
		case FormatJSON:
			out[format] = docData
		default:
			return nil, ValidateFormat(format)
		}
	}
	return out, nil
}
