// Package paths implements consumer-facing iteration over a
// wordgraph.ReadOnlyView: enumerating accepted words and left factors in
// short-lex order, and detecting whether such an enumeration is infinite.
//
// Grounded on the teacher's algorithms/bfs.go and algorithms/dfs.go (thin
// wrapper packages consuming core.Graph read-only) and dfs/cycle.go (the
// three-colour DFS idiom), reworked from core.Graph's string-keyed,
// edge-listing traversal onto wordgraph.ReadOnlyView's label-ordered
// ForEachEdge.
package paths

import "github.com/kestrelgraph/stephen/wordgraph"

const (
	white = 0
	gray  = 1
	black = 2
)

// HasCycleOnPath reports whether any node reachable from start (inclusive)
// lies on a directed cycle. It does not check whether that cycle can reach
// any particular accept node, only whether the reachable sub-automaton as a
// whole is cyclic — so NumberOfWordsAccepted can over-report Infinite for a
// graph whose only cycle never reaches accept. Used by
// NumberOfWordsAccepted/NumberOfLeftFactors to distinguish "finite count"
// from "infinite".
func HasCycleOnPath(view wordgraph.ReadOnlyView, start wordgraph.Node) bool {
	color := make(map[wordgraph.Node]int)
	return dfsHasCycle(view, start, color)
}

func dfsHasCycle(view wordgraph.ReadOnlyView, c wordgraph.Node, color map[wordgraph.Node]int) bool {
	color[c] = gray
	found := false
	view.ForEachEdge(c, func(_ wordgraph.Letter, d wordgraph.Node) {
		if found {
			return
		}
		switch color[d] {
		case gray:
			found = true
		case white:
			if dfsHasCycle(view, d, color) {
				found = true
			}
		}
	})
	color[c] = black
	return found
}
