package graph_test

import (
	"fmt"

	"github.com/wordgrove/wordgrove/pkg/graph"
	"github.com/wordgrove/wordgrove/pkg/layout"
	"github.com/wordgrove/wordgrove/pkg/words"
)

func ExampleFromLayout() {
	trie, err := words.BuildTrie([]string{"GO", "GOT"}, words.Options{})
	if err != nil {
		panic(err)
	}
	res, err := layout.Compute(trie.Tree, layout.DefaultConfig())
	if err != nil {
		panic(err)
	}

	doc := graph.FromLayout(trie.Tree, res, trie.Terminals)
	for _, n := range doc.Nodes {
		marker := ""
		if n.Terminal {
			marker = "*"
		}
		fmt.Printf("%q%s depth=%d (%.1f, %.1f)\n", n.Label, marker, n.Depth, n.X, n.Y)
	}
	fmt.Println("words:", doc.Words())
	// Output:
	// "" depth=0 (0.0, 0.0)
	// "G" depth=1 (0.0, 1.0)
	// "O"* depth=2 (0.0, 2.0)
	// "T"* depth=3 (0.0, 3.0)
	// words: [GO GOT]
}
