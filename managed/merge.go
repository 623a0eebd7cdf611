package managed

import "github.com/kestrelgraph/stephen/wordgraph"

// ProcessCoincidences drains the node manager's coincidence stack, merging
// nodes until the stack and every cascade the merges produce has been
// resolved. It is the merge engine's public entry point and the only place
// that consumes Nodes.Coincide's queue.
//
// Grounded on original_source's Stephen::Runner::process_coincidences (the
// distillation source for §4.E), reworked around the private union-find in
// unionfind.go rather than re-deriving representatives by rescanning the
// stack.
func (g *Graph) ProcessCoincidences() {
	if !g.Nodes.HasCoincidence() {
		return
	}
	uf := newUnionFind(g.Nodes.Capacity())
	for {
		pair, ok := g.Nodes.PopCoincidence()
		if !ok {
			break
		}
		ru, rv := uf.find(pair.U), uf.find(pair.V)
		if ru == rv {
			continue
		}
		lo, hi := ru, rv
		if hi < lo {
			lo, hi = hi, lo
		}
		g.mergeNodes(lo, hi)
		uf.union(lo, hi)
	}
	CheckInvariants(g)
}

// mergeNodes retires maxNode onto minNode: folds maxNode's edges onto
// minNode via Sourced.MergeNodes, then frees maxNode's identifier.
// Precondition: minNode < maxNode, both currently active.
func (g *Graph) mergeNodes(minNode, maxNode wordgraph.Node) {
	onNewEdge := func(p wordgraph.Node, x wordgraph.Letter) {
		if g.OnNewEdge != nil {
			g.OnNewEdge(p, x)
		}
	}
	onConflict := func(a, b wordgraph.Node) {
		g.Nodes.Coincide(a, b)
		if g.OnIncompat != nil {
			g.OnIncompat(a, b)
		}
	}
	g.Sourced.MergeNodes(minNode, maxNode, onNewEdge, onConflict)
	g.Nodes.FreeNode(maxNode)
	if g.OnMerge != nil {
		g.OnMerge(minNode, maxNode)
	}
}
