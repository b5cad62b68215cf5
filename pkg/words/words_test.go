package words

import (
	"slices"
	"testing"

	"github.com/wordgrove/wordgrove/pkg/tree"
)

// levelLabels collects labels and terminal flags level by level, skipping
// the root.
func levelLabels(tr *Trie) (labels [][]string, terminal [][]bool) {
	t := tr.Tree
	level := slices.Clone(t.Children(t.Root()))
	for len(level) > 0 {
		var names []string
		var flags []bool
		var next []tree.ID
		for _, id := range level {
			names = append(names, t.Label(id))
			flags = append(flags, tr.Terminals[id])
			next = append(next, t.Children(id)...)
		}
		labels = append(labels, names)
		terminal = append(terminal, flags)
		level = next
	}
	return labels, terminal
}

func TestBuildTrie(t *testing.T) {
	tests := []struct {
		name      string
		words     []string
		labels    [][]string
		terminals [][]bool
	}{
		{
			name:      "shared prefixes",
			words:     []string{"abc", "ab", "bc"},
			labels:    [][]string{{"a", "b"}, {"b", "c"}, {"c"}},
			terminals: [][]bool{{false, false}, {true, true}, {true}},
		},
		{
			name:      "case sensitive",
			words:     []string{"abc", "aba", "aca", "Ab"},
			labels:    [][]string{{"a", "A"}, {"b", "c", "b"}, {"c", "a", "a"}},
			terminals: [][]bool{{false, false}, {false, false, true}, {true, true, true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trie, err := BuildTrie(tt.words, Options{})
			if err != nil {
				t.Fatalf("BuildTrie() error: %v", err)
			}
			if trie.Tree.Label(trie.Tree.Root()) != "" {
				t.Errorf("root label = %q, want empty", trie.Tree.Label(trie.Tree.Root()))
			}

			labels, terminals := levelLabels(trie)
			if len(labels) != len(tt.labels) {
				t.Fatalf("depth = %d levels, want %d", len(labels), len(tt.labels))
			}
			for i := range tt.labels {
				if !slices.Equal(labels[i], tt.labels[i]) {
					t.Errorf("level %d labels = %v, want %v", i+1, labels[i], tt.labels[i])
				}
				if !slices.Equal(terminals[i], tt.terminals[i]) {
					t.Errorf("level %d terminals = %v, want %v", i+1, terminals[i], tt.terminals[i])
				}
			}
		})
	}
}

func TestBuildTrieEmptyInput(t *testing.T) {
	trie, err := BuildTrie(nil, Options{})
	if err != nil {
		t.Fatalf("BuildTrie(nil) error: %v", err)
	}
	if trie.Tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (root only)", trie.Tree.Len())
	}
	if len(trie.Terminals) != 0 {
		t.Errorf("Terminals = %v, want empty", trie.Terminals)
	}
}

func TestBuildTrieMaxDepth(t *testing.T) {
	trie, err := BuildTrie([]string{"abcd", "ab"}, Options{MaxDepth: 2})
	if err != nil {
		t.Fatalf("BuildTrie() error: %v", err)
	}

	if got := trie.Tree.Height(); got != 3 {
		t.Errorf("Height() = %d, want 3 (root + 2 levels)", got)
	}

	labels, terminals := levelLabels(trie)
	want := [][]string{{"a"}, {"b"}}
	if !slices.EqualFunc(labels, want, slices.Equal) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	// "ab" ends exactly at the cap and stays terminal; "abcd" was cut.
	if !terminals[1][0] {
		t.Error(`node "b" should be terminal (word "ab")`)
	}
}

func TestWords(t *testing.T) {
	input := []string{"AB", "ABC", "BC"}
	trie, err := BuildTrie(input, Options{})
	if err != nil {
		t.Fatalf("BuildTrie() error: %v", err)
	}
	if got := trie.Words(); !slices.Equal(got, input) {
		t.Errorf("Words() = %v, want %v", got, input)
	}
}

func TestWordsMaxDepthDropsTruncated(t *testing.T) {
	trie, err := BuildTrie([]string{"abcd", "ab"}, Options{MaxDepth: 2})
	if err != nil {
		t.Fatalf("BuildTrie() error: %v", err)
	}
	if got := trie.Words(); !slices.Equal(got, []string{"ab"}) {
		t.Errorf("Words() = %v, want [ab]", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"Apple", "Apples", "adopt", "add", "Apply", ""})
	want := []string{"ADD", "ADOPT", "APPLE", "APPLES", "APPLY"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeDedupes(t *testing.T) {
	got := Normalize([]string{"go", "GO", "Go"})
	want := []string{"GO"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}
