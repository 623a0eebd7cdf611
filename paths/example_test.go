package paths_test

import (
	"fmt"

	"github.com/kestrelgraph/stephen/paths"
	"github.com/kestrelgraph/stephen/wordgraph"
)

// ExampleWordsAccepted builds a small two-letter word graph and enumerates
// every word of length at most 2 accepted at node 2, in short-lex order.
func ExampleWordsAccepted() {
	g, _ := wordgraph.NewSourced(3, 2)
	_ = g.AddEdge(0, 0, 1)
	_ = g.AddEdge(1, 1, 2)
	_ = g.AddEdge(0, 1, 2)

	it, _ := paths.WordsAccepted(g, 0, 2, 0, 2)
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		fmt.Println(w)
	}

	// Output:
	// [1]
	// [0 1]
}

// ExampleLeftFactors enumerates every left factor of the same word graph,
// including the empty word.
func ExampleLeftFactors() {
	g, _ := wordgraph.NewSourced(3, 2)
	_ = g.AddEdge(0, 0, 1)
	_ = g.AddEdge(1, 1, 2)
	_ = g.AddEdge(0, 1, 2)

	it, _ := paths.LeftFactors(g, 0, 0, 2)
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		fmt.Println(w)
	}

	// Output:
	// []
	// [0]
	// [1]
	// [0 1]
}
