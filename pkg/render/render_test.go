package render_test

import (
	"strings"
	"testing"

	"github.com/wordgrove/wordgrove/pkg/graph"
	"github.com/wordgrove/wordgrove/pkg/layout"
	"github.com/wordgrove/wordgrove/pkg/render"
	"github.com/wordgrove/wordgrove/pkg/words"
)

func testDocument(t *testing.T) graph.Document {
	t.Helper()
	trie, err := words.BuildTrie([]string{"AB", "AC"}, words.Options{})
	if err != nil {
		t.Fatalf("BuildTrie(): %v", err)
	}
	res, err := layout.Compute(trie.Tree, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}
	return graph.FromLayout(trie.Tree, res, trie.Terminals)
}

func TestRenderSVG(t *testing.T) {
	doc := testDocument(t)
	svg := string(render.RenderSVG(doc))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("missing svg header: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}

	// Four nodes, three edges.
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("got %d circles, want 4", got)
	}
	if got := strings.Count(svg, "<line"); got != 3 {
		t.Errorf("got %d lines, want 3", got)
	}

	// Two terminals (B and C) are filled, root and A are white.
	if got := strings.Count(svg, `fill="#fbbf24"`); got != 2 {
		t.Errorf("got %d terminal fills, want 2", got)
	}
	if got := strings.Count(svg, `fill="white"`); got != 2 {
		t.Errorf("got %d white fills, want 2", got)
	}

	// The root's empty label is skipped.
	if got := strings.Count(svg, "<text"); got != 3 {
		t.Errorf("got %d labels, want 3", got)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	doc := testDocument(t)

	svg := string(render.RenderSVG(doc, render.WithoutLabels(), render.WithoutEdges()))
	if strings.Contains(svg, "<text") {
		t.Error("WithoutLabels() left labels in output")
	}
	if strings.Contains(svg, "<line") {
		t.Error("WithoutEdges() left edges in output")
	}

	small := render.RenderSVG(doc, render.WithScale(10), render.WithMargin(5))
	big := render.RenderSVG(doc, render.WithScale(200))
	if len(small) == 0 || len(big) == 0 {
		t.Fatal("empty render")
	}
	if string(small) == string(big) {
		t.Error("scale options had no effect")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	doc := graph.Document{
		Direction: "TB",
		Nodes: []graph.Node{
			{ID: 0, Label: `<&">`},
		},
	}
	svg := string(render.RenderSVG(doc))
	if !strings.Contains(svg, "&lt;&amp;&quot;&gt;") {
		t.Errorf("label not escaped: %s", svg)
	}
}

func TestToDOT(t *testing.T) {
	doc := testDocument(t)
	dot := render.ToDOT(doc, render.DOTOptions{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("missing graph header: %.40s", dot)
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Error("missing neato engine directive")
	}

	// Every node position is pinned.
	if got := strings.Count(dot, `!"`); got != len(doc.Nodes) {
		t.Errorf("got %d pinned positions, want %d", got, len(doc.Nodes))
	}
	if got := strings.Count(dot, " -- "); got != len(doc.Edges) {
		t.Errorf("got %d edges, want %d", got, len(doc.Edges))
	}
	if got := strings.Count(dot, "fillcolor=gold"); got != 2 {
		t.Errorf("got %d terminal nodes, want 2", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	doc := testDocument(t)
	dot := render.ToDOT(doc, render.DOTOptions{Detailed: true})
	if !strings.Contains(dot, `depth 1`) {
		t.Errorf("detailed labels missing depth: %s", dot)
	}
}

func TestToDOTNegatesY(t *testing.T) {
	doc := graph.Document{
		Direction: "TB",
		Nodes: []graph.Node{
			{ID: 0, Label: "a", X: 1, Y: 2},
		},
	}
	dot := render.ToDOT(doc, render.DOTOptions{})
	if !strings.Contains(dot, `pos="1.0000,-2.0000!"`) {
		t.Errorf("y not negated for graphviz: %s", dot)
	}
}
