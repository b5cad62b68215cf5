// Package words turns flat word lists into prefix trees.
//
// A dictionary like ["AB", "AC", "ABC"] becomes a trie whose nodes are
// single characters and whose root carries an empty label:
//
//	""
//	└── A
//	    ├── B*
//	    │   └── C*
//	    └── C*
//
// Starred nodes are terminals: a word from the input ends there. Terminals
// are tracked separately from structural leaves because a word can be a
// prefix of another ("AB" ends at an internal node).
//
// [Normalize] implements the standard input cleanup (uppercase, dedupe,
// drop empties, sort); [BuildTrie] preserves insertion order, so callers
// that want sorted sibling order normalize first.
package words

import (
	"sort"
	"strings"

	"github.com/wordgrove/wordgrove/pkg/tree"
)

// Trie is a word trie backed by a validated [tree.Tree].
type Trie struct {
	// Tree holds the structural prefix tree. The root label is "".
	Tree *tree.Tree

	// Terminals marks nodes where an input word ends.
	Terminals map[tree.ID]bool
}

// Words reconstructs the word list the trie encodes by concatenating
// labels from the root down to each terminal. Results are sorted.
// Truncated words (dropped by MaxDepth) are not recovered.
func (t *Trie) Words() []string {
	out := make([]string, 0, len(t.Terminals))
	for id := range t.Terminals {
		word := ""
		for cur := id; cur != tree.None; cur = t.Tree.Parent(cur) {
			word = t.Tree.Label(cur) + word
		}
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// Options configures trie construction.
type Options struct {
	// MaxDepth caps node depth (root = 0). Characters beyond the cap are
	// dropped. 0 means unlimited.
	MaxDepth int
}

// Normalize prepares a raw word list for trie construction:
// uppercase, drop empty strings, deduplicate, sort.
func Normalize(raw []string) []string {
	set := make(map[string]struct{}, len(raw))
	for _, w := range raw {
		if w == "" {
			continue
		}
		set[strings.ToUpper(w)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// BuildTrie constructs a character trie from words. Sibling order follows
// first-insertion order of each character; empty words are skipped.
// The resulting tree is validated before it is returned.
func BuildTrie(wordList []string, opts Options) (*Trie, error) {
	t := tree.New()
	root := t.AddNode("")

	// Per-node child lookup by character, maintained only during build.
	index := []map[rune]tree.ID{{}}

	at := func(id tree.ID) map[rune]tree.ID { return index[id] }

	terminals := make(map[tree.ID]bool)
	for _, w := range wordList {
		cur := root
		depth := 0
		truncated := false
		for _, r := range w {
			if opts.MaxDepth > 0 && depth+1 > opts.MaxDepth {
				truncated = true
				break
			}
			next, ok := at(cur)[r]
			if !ok {
				id, err := t.AddChild(cur, string(r))
				if err != nil {
					return nil, err
				}
				at(cur)[r] = id
				index = append(index, map[rune]tree.ID{})
				next = id
			}
			cur = next
			depth++
		}
		if !truncated && cur != root {
			terminals[cur] = true
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Trie{Tree: t, Terminals: terminals}, nil
}
