package graph_test

import (
	"path/filepath"
	"slices"
	"testing"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/graph"
	"github.com/wordgrove/wordgrove/pkg/layout"
	"github.com/wordgrove/wordgrove/pkg/tree"
	"github.com/wordgrove/wordgrove/pkg/words"
)

func trieDocument(t *testing.T, wordList []string, cfg layout.Config) graph.Document {
	t.Helper()
	trie, err := words.BuildTrie(wordList, words.Options{})
	if err != nil {
		t.Fatalf("BuildTrie(): %v", err)
	}
	res, err := layout.Compute(trie.Tree, cfg)
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}
	return graph.FromLayout(trie.Tree, res, trie.Terminals)
}

func TestFromLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	doc := trieDocument(t, []string{"AB", "AC"}, cfg)

	// Root "" → A → {B, C}: four nodes, three edges.
	if len(doc.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(doc.Nodes))
	}
	if len(doc.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(doc.Edges))
	}
	if doc.Direction != "TB" {
		t.Errorf("direction = %q, want TB", doc.Direction)
	}
	if doc.Config.SiblingDistance != cfg.SiblingDistance {
		t.Errorf("config echo mismatch: %+v", doc.Config)
	}

	// Nodes appear in pre-order, root first.
	if doc.Nodes[0].Label != "" || doc.Nodes[0].Depth != 0 {
		t.Errorf("first node = %+v, want root at depth 0", doc.Nodes[0])
	}

	terminals := 0
	for _, n := range doc.Nodes {
		if n.Terminal {
			terminals++
		}
	}
	if terminals != 2 {
		t.Errorf("got %d terminal nodes, want 2", terminals)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	doc := trieDocument(t, []string{"cat", "car", "dog"}, layout.DefaultConfig())

	data, err := graph.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal(): %v", err)
	}
	got, err := graph.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal(): %v", err)
	}

	if len(got.Nodes) != len(doc.Nodes) || len(got.Edges) != len(doc.Edges) {
		t.Fatalf("round trip changed shape: %d/%d nodes, %d/%d edges",
			len(got.Nodes), len(doc.Nodes), len(got.Edges), len(doc.Edges))
	}
	for i := range doc.Nodes {
		if got.Nodes[i] != doc.Nodes[i] {
			t.Errorf("node %d changed: %+v != %+v", i, got.Nodes[i], doc.Nodes[i])
		}
	}
	if got.Bounds != doc.Bounds {
		t.Errorf("bounds changed: %+v != %+v", got.Bounds, doc.Bounds)
	}
}

func TestFileRoundTrip(t *testing.T) {
	doc := trieDocument(t, []string{"go", "got"}, layout.DefaultConfig())

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := graph.WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}
	got, err := graph.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if len(got.Nodes) != len(doc.Nodes) {
		t.Errorf("got %d nodes, want %d", len(got.Nodes), len(doc.Nodes))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := graph.ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantCode errs.Code
	}{
		{"not json", `{"nodes": [`, errs.ErrCodeInvalidFormat},
		{"no nodes", `{"direction": "TB", "nodes": [], "edges": []}`, errs.ErrCodeInvalidFormat},
		{"bad direction", `{"direction": "XX", "nodes": [{"id": 0, "label": "a"}]}`, errs.ErrCodeInvalidDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := graph.Unmarshal([]byte(tt.data)); !errs.Is(err, tt.wantCode) {
				t.Errorf("Unmarshal() = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestToTree(t *testing.T) {
	doc := trieDocument(t, []string{"AB", "ABC", "D"}, layout.DefaultConfig())

	rebuilt, terminals, err := doc.ToTree()
	if err != nil {
		t.Fatalf("ToTree(): %v", err)
	}
	if rebuilt.Len() != len(doc.Nodes) {
		t.Fatalf("rebuilt %d nodes, want %d", rebuilt.Len(), len(doc.Nodes))
	}

	// Recomputing with the echoed config reproduces the stored positions.
	cfg, err := doc.LayoutConfig()
	if err != nil {
		t.Fatalf("LayoutConfig(): %v", err)
	}
	res, err := layout.Compute(rebuilt, cfg)
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}
	redone := graph.FromLayout(rebuilt, res, terminals)
	for i := range doc.Nodes {
		if redone.Nodes[i] != doc.Nodes[i] {
			t.Errorf("node %d not reproduced: %+v != %+v", i, redone.Nodes[i], doc.Nodes[i])
		}
	}
}

func TestToTreeRejectsMalformed(t *testing.T) {
	node := func(id int) graph.Node { return graph.Node{ID: id, Label: "x"} }

	tests := []struct {
		name     string
		doc      graph.Document
		wantCode errs.Code
	}{
		{
			name: "duplicate node id",
			doc: graph.Document{
				Nodes: []graph.Node{node(0), node(0)},
			},
			wantCode: errs.ErrCodeStructureBadNodeID,
		},
		{
			name: "edge to unknown node",
			doc: graph.Document{
				Nodes: []graph.Node{node(0)},
				Edges: []graph.Edge{{From: 0, To: 7}},
			},
			wantCode: errs.ErrCodeStructureBadNodeID,
		},
		{
			name: "two parents",
			doc: graph.Document{
				Nodes: []graph.Node{node(0), node(1), node(2)},
				Edges: []graph.Edge{{From: 0, To: 2}, {From: 1, To: 2}, {From: 0, To: 1}},
			},
			wantCode: errs.ErrCodeDuplicateParent,
		},
		{
			name: "cycle",
			doc: graph.Document{
				Nodes: []graph.Node{node(0), node(1), node(2)},
				Edges: []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0}},
			},
			wantCode: errs.ErrCodeStructureCycle,
		},
		{
			name: "disconnected node",
			doc: graph.Document{
				Nodes: []graph.Node{node(0), node(1), node(2)},
				Edges: []graph.Edge{{From: 0, To: 1}},
			},
			wantCode: errs.ErrCodeOrphanNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.doc.ToTree(); !errs.Is(err, tt.wantCode) {
				t.Errorf("ToTree() = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestWords(t *testing.T) {
	input := words.Normalize([]string{"dog", "cat", "car", "cat"})
	doc := trieDocument(t, input, layout.DefaultConfig())

	if got := doc.Words(); !slices.Equal(got, input) {
		t.Errorf("Words() = %v, want %v", got, input)
	}
}

func TestWordsNonTrieDocument(t *testing.T) {
	tr := tree.New()
	root := tr.AddNode("root")
	tr.AddChild(root, "leaf")
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
	res, err := layout.Compute(tr, layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	doc := graph.FromLayout(tr, res, nil)
	if got := doc.Words(); got != nil {
		t.Errorf("Words() = %v, want nil", got)
	}
}
