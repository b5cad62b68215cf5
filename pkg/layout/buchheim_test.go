package layout_test

import (
	"math"
	"testing"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/layout"
	"github.com/wordgrove/wordgrove/pkg/tree"
	"github.com/wordgrove/wordgrove/pkg/words"
)

const eps = 1e-9

// buildTree assembles a tree from parent→children label pairs, in order.
// The first pair's parent becomes the root.
func buildTree(t *testing.T, edges [][2]string) (*tree.Tree, map[string]tree.ID) {
	t.Helper()
	tr := tree.New()
	ids := map[string]tree.ID{}
	for _, e := range edges {
		parent, child := e[0], e[1]
		if _, ok := ids[parent]; !ok {
			ids[parent] = tr.AddNode(parent)
		}
		id, err := tr.AddChild(ids[parent], child)
		if err != nil {
			t.Fatalf("AddChild(%s, %s): %v", parent, child, err)
		}
		ids[child] = id
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	return tr, ids
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestComputeSampleTree(t *testing.T) {
	// A → [B, C], B → [D, E], C leaf.
	tr, ids := buildTree(t, [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"B", "E"}})

	res, err := layout.Compute(tr, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}

	want := map[string]layout.Point{
		"A": {X: 1.0, Y: 0},
		"B": {X: 0.5, Y: 1},
		"C": {X: 1.5, Y: 1},
		"D": {X: 0.0, Y: 2},
		"E": {X: 1.0, Y: 2},
	}
	for label, wp := range want {
		got := res.Positions[ids[label]]
		if !approx(got.X, wp.X) || !approx(got.Y, wp.Y) {
			t.Errorf("%s = (%v, %v), want (%v, %v)", label, got.X, got.Y, wp.X, wp.Y)
		}
	}
}

func TestComputeChain(t *testing.T) {
	// A straight chain must not trigger any overlap shifts.
	tr, ids := buildTree(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}})

	res, err := layout.Compute(tr, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}

	for i, label := range []string{"A", "B", "C", "D"} {
		got := res.Positions[ids[label]]
		if !approx(got.X, 0) || !approx(got.Y, float64(i)) {
			t.Errorf("%s = (%v, %v), want (0, %d)", label, got.X, got.Y, i)
		}
	}
	if !approx(res.Bounds.Width(), 0) {
		t.Errorf("chain width = %v, want 0", res.Bounds.Width())
	}
}

func TestComputeDeepChain(t *testing.T) {
	// Deep enough to blow a recursive walk's stack if there were one.
	const depth = 200_000
	tr := tree.New()
	cur := tr.AddNode("root")
	for i := 1; i < depth; i++ {
		next, err := tr.AddChild(cur, "n")
		if err != nil {
			t.Fatal(err)
		}
		cur = next
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}

	res, err := layout.Compute(tr, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}

	last := res.Positions[cur]
	if !approx(last.X, 0) || !approx(last.Y, float64(depth-1)) {
		t.Errorf("deepest node = (%v, %v), want (0, %d)", last.X, last.Y, depth-1)
	}
	if !approx(res.Bounds.Width(), 0) {
		t.Errorf("chain width = %v, want 0", res.Bounds.Width())
	}
}

func TestComputeSingleNode(t *testing.T) {
	for _, dir := range layout.Directions {
		tr := tree.New()
		tr.AddNode("only")
		if err := tr.Validate(); err != nil {
			t.Fatal(err)
		}

		cfg := layout.DefaultConfig()
		cfg.Direction = dir
		res, err := layout.Compute(tr, cfg)
		if err != nil {
			t.Fatalf("Compute(%s): %v", dir, err)
		}
		p := res.Positions[0]
		if !approx(p.X, 0) || !approx(p.Y, 0) {
			t.Errorf("%s: single node at (%v, %v), want (0, 0)", dir, p.X, p.Y)
		}
	}
}

// TestComputeWordTrie pins the full fixture: a trie over sixteen words with
// uneven subtree heights, exercising contour threads and shift
// distribution across intermediate siblings.
func TestComputeWordTrie(t *testing.T) {
	wordList := []string{
		"ab", "ac",
		"bd", "be", "bf", "bg", "bfa", "bfb", "bfc", "bfd", "bfe",
		"c",
		"dxa", "dxb", "dxc", "dxd",
	}
	trie, err := words.BuildTrie(wordList, words.Options{})
	if err != nil {
		t.Fatalf("BuildTrie(): %v", err)
	}
	tr := trie.Tree

	res, err := layout.Compute(tr, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Compute(): %v", err)
	}

	// byPath resolves a node by its character path from the root.
	byPath := func(path string) tree.ID {
		id := tr.Root()
		for _, r := range path {
			found := tree.None
			for _, c := range tr.Children(id) {
				if tr.Label(c) == string(r) {
					found = c
					break
				}
			}
			if found == tree.None {
				t.Fatalf("node %q not found", path)
			}
			id = found
		}
		return id
	}

	want := map[string]layout.Point{
		"":    {X: 4.5, Y: 0},
		"a":   {X: 0.5, Y: 1},
		"ab":  {X: 0.0, Y: 2},
		"ac":  {X: 1.0, Y: 2},
		"b":   {X: 3.5, Y: 1},
		"bd":  {X: 2.0, Y: 2},
		"be":  {X: 3.0, Y: 2},
		"bf":  {X: 4.0, Y: 2},
		"bg":  {X: 5.0, Y: 2},
		"bfa": {X: 2.0, Y: 3},
		"bfb": {X: 3.0, Y: 3},
		"bfc": {X: 4.0, Y: 3},
		"bfd": {X: 5.0, Y: 3},
		"bfe": {X: 6.0, Y: 3},
		"c":   {X: 6.0, Y: 1},
		"d":   {X: 8.5, Y: 1},
		"dx":  {X: 8.5, Y: 2},
		"dxa": {X: 7.0, Y: 3},
		"dxb": {X: 8.0, Y: 3},
		"dxc": {X: 9.0, Y: 3},
		"dxd": {X: 10.0, Y: 3},
	}
	for path, wp := range want {
		got := res.Positions[byPath(path)]
		if !approx(got.X, wp.X) || !approx(got.Y, wp.Y) {
			t.Errorf("%q = (%v, %v), want (%v, %v)", path, got.X, got.Y, wp.X, wp.Y)
		}
	}
}

// checkInvariants asserts the layout guarantees on a computed result.
func checkInvariants(t *testing.T, tr *tree.Tree, res *layout.Result, cfg layout.Config) {
	t.Helper()

	// Depth-monotonic y.
	for id := range tr.PreOrder() {
		wantY := float64(tr.Depth(id)) * cfg.LevelDistance
		if !approx(res.Canonical[id].Y, wantY) {
			t.Errorf("node %d: y = %v, want %v", id, res.Canonical[id].Y, wantY)
		}
	}

	// Centering: parents at the midpoint of first and last child.
	for id := range tr.PreOrder() {
		kids := tr.Children(id)
		if len(kids) == 0 {
			continue
		}
		mid := (res.Canonical[kids[0]].X + res.Canonical[kids[len(kids)-1]].X) / 2
		if !approx(res.Canonical[id].X, mid) {
			t.Errorf("node %d: x = %v, want midpoint %v", id, res.Canonical[id].X, mid)
		}
	}

	// No-overlap: same-depth nodes keep the configured separation.
	byDepth := map[int][]tree.ID{}
	for id := range tr.PreOrder() {
		byDepth[tr.Depth(id)] = append(byDepth[tr.Depth(id)], id)
	}
	for _, nodes := range byDepth {
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				a, b := nodes[i], nodes[j]
				sep := math.Abs(res.Canonical[a].X - res.Canonical[b].X)
				minSep := cfg.SubtreeDistance
				if tr.Parent(a) == tr.Parent(b) {
					minSep = cfg.SiblingDistance
				}
				if sep < minSep-eps {
					t.Errorf("nodes %d and %d at same depth: separation %v < %v", a, b, sep, minSep)
				}
			}
		}
	}
}

func TestComputeInvariants(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		cfg   layout.Config
	}{
		{
			name:  "defaults",
			words: []string{"ab", "ac", "abcd", "abce", "bd", "x", "xyzzy"},
			cfg:   layout.DefaultConfig(),
		},
		{
			name:  "wide subtree distance",
			words: []string{"aaa", "aab", "aba", "abb", "baa", "bab", "caca", "cadb"},
			cfg: layout.Config{
				SiblingDistance: 1.0,
				SubtreeDistance: 2.5,
				LevelDistance:   1.0,
				Direction:       layout.DirectionTB,
			},
		},
		{
			name:  "scaled distances",
			words: []string{"go", "god", "gone", "gopher", "grape", "grind", "guard"},
			cfg: layout.Config{
				SiblingDistance: 0.5,
				SubtreeDistance: 0.75,
				LevelDistance:   2.0,
				Direction:       layout.DirectionTB,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trie, err := words.BuildTrie(words.Normalize(tt.words), words.Options{})
			if err != nil {
				t.Fatalf("BuildTrie(): %v", err)
			}
			res, err := layout.Compute(trie.Tree, tt.cfg)
			if err != nil {
				t.Fatalf("Compute(): %v", err)
			}
			checkInvariants(t, trie.Tree, res, tt.cfg)
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	trie, err := words.BuildTrie([]string{"alpha", "beta", "gamma", "grade", "al", "be"}, words.Options{})
	if err != nil {
		t.Fatal(err)
	}

	first, err := layout.Compute(trie.Tree, layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	second, err := layout.Compute(trie.Tree, layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := range first.Positions {
		if first.Positions[i] != second.Positions[i] {
			t.Errorf("node %d: %v != %v across runs", i, first.Positions[i], second.Positions[i])
		}
	}
}

// TestComputeMinimalWidth pins total widths that hand analysis shows are
// optimal for the shape: no narrower no-overlap centered layout exists.
func TestComputeMinimalWidth(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		width float64
	}{
		{
			name:  "chain",
			edges: [][2]string{{"A", "B"}, {"B", "C"}},
			width: 0,
		},
		{
			name:  "two leaves",
			edges: [][2]string{{"A", "B"}, {"A", "C"}},
			width: 1,
		},
		{
			// Leaf D tucks in next to B; C centers between them.
			name:  "fork plus leaf",
			edges: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"B", "E"}},
			width: 1.5,
		},
		{
			// Balanced binary tree of seven nodes: four leaves dominate.
			name: "balanced binary",
			edges: [][2]string{
				{"A", "B"}, {"A", "C"},
				{"B", "D"}, {"B", "E"},
				{"C", "F"}, {"C", "G"},
			},
			width: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := buildTree(t, tt.edges)
			res, err := layout.Compute(tr, layout.DefaultConfig())
			if err != nil {
				t.Fatalf("Compute(): %v", err)
			}
			if !approx(res.Bounds.Width(), tt.width) {
				t.Errorf("width = %v, want %v", res.Bounds.Width(), tt.width)
			}
		})
	}
}

func TestComputeErrors(t *testing.T) {
	valid, _ := buildTree(t, [][2]string{{"A", "B"}})

	t.Run("empty tree", func(t *testing.T) {
		_, err := layout.Compute(tree.New(), layout.DefaultConfig())
		if !errs.Is(err, errs.ErrCodeEmptyTree) {
			t.Errorf("Compute(empty) = %v, want EMPTY_TREE", err)
		}
	})

	t.Run("nil tree", func(t *testing.T) {
		_, err := layout.Compute(nil, layout.DefaultConfig())
		if !errs.Is(err, errs.ErrCodeEmptyTree) {
			t.Errorf("Compute(nil) = %v, want EMPTY_TREE", err)
		}
	})

	t.Run("non-positive distance", func(t *testing.T) {
		cfg := layout.DefaultConfig()
		cfg.SiblingDistance = 0
		if _, err := layout.Compute(valid, cfg); !errs.Is(err, errs.ErrCodeInvalidDistance) {
			t.Errorf("Compute() = %v, want INVALID_DISTANCE", err)
		}
	})

	t.Run("negative level distance", func(t *testing.T) {
		cfg := layout.DefaultConfig()
		cfg.LevelDistance = -1
		if _, err := layout.Compute(valid, cfg); !errs.Is(err, errs.ErrCodeInvalidDistance) {
			t.Errorf("Compute() = %v, want INVALID_DISTANCE", err)
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		cfg := layout.DefaultConfig()
		cfg.Direction = layout.Direction("DIAGONAL")
		if _, err := layout.Compute(valid, cfg); !errs.Is(err, errs.ErrCodeInvalidDirection) {
			t.Errorf("Compute() = %v, want INVALID_DIRECTION", err)
		}
	})
}

func TestComputeDoesNotMutateTree(t *testing.T) {
	tr, ids := buildTree(t, [][2]string{{"A", "B"}, {"A", "C"}})

	before := map[string]tree.Node{}
	for label, id := range ids {
		before[label] = tr.Node(id)
	}

	if _, err := layout.Compute(tr, layout.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	for label, id := range ids {
		after := tr.Node(id)
		if after.Parent != before[label].Parent ||
			after.Depth != before[label].Depth ||
			after.Number != before[label].Number ||
			len(after.Children) != len(before[label].Children) {
			t.Errorf("node %s changed during layout: %+v != %+v", label, after, before[label])
		}
	}
}
