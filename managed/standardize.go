package managed

import "github.com/kestrelgraph/stephen/wordgraph"

// Standardize renumbers the active nodes of g into BFS discovery order
// starting from node 0, labels visited in ascending alphabet order, then
// truncates the graph to exactly that many nodes.
//
// After standardization, node 0 is the start node and every active node's
// identifier equals its BFS rank, so two isomorphic word graphs that only
// differ by node numbering compare equal after this pass. This is the "is
// standard" canonical form referenced by SPEC_FULL.md §4.E / §8 (P7).
//
// Precondition: g has no pending coincidences (ProcessCoincidences must
// have been run to a fixed point first) and node 0 is active.
//
// Standardize returns relabel, a slice indexed by pre-call identifier
// (length g.Nodes.Capacity() at call time): relabel[old] is the node's
// identifier after standardization, for every old identifier that survived
// (callers tracking a specific node, such as a driver's accept state, must
// remap it through relabel).
//
// Grounded on the teacher's bfs/bfs.go traversal-order construction,
// reworked from "build a visit order" into "build and apply a permutation
// in place" per original_source's Digraph::standardize.
func (g *Graph) Standardize() (relabel []wordgraph.Node) {
	active := g.Nodes.ActiveNodes()
	n := len(active)
	if n == 0 {
		return nil
	}

	// target[newID] = oldID, in BFS discovery order.
	target := make([]wordgraph.Node, 0, n)
	visited := make(map[wordgraph.Node]bool, n)

	queue := []wordgraph.Node{0}
	visited[0] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		target = append(target, c)
		g.Sourced.ForEachEdge(c, func(_ wordgraph.Letter, d wordgraph.Node) {
			if !visited[d] {
				visited[d] = true
				queue = append(queue, d)
			}
		})
	}
	// Any active node unreachable from 0 (should not occur for a connected
	// Stephen word graph, but standardize is defined total) is appended in
	// ascending identifier order after the BFS-reachable prefix.
	for _, c := range active {
		if !visited[c] {
			visited[c] = true
			target = append(target, c)
		}
	}

	return g.permuteNodesNC(target, n)
}

// permuteNodesNC applies the permutation described by target (target[i] is
// the old identifier that must end up at new identifier i, for i < n) as a
// product of disjoint transpositions via SwapNodes, then restricts the
// graph to n nodes and rebuilds their predecessor lists.
//
// Identifiers in [n, capacity) not mentioned by target (inactive, or active
// nodes with an old identifier >= n that are relocating into [0,n)) are
// filled in arbitrarily: their final contents are discarded by Restrict, so
// only where the n wanted contents land matters.
//
// "NC" (no checks): the caller guarantees target lists n distinct valid
// identifiers and that no coincidence is pending.
func (g *Graph) permuteNodesNC(target []wordgraph.Node, n int) []wordgraph.Node {
	capacity := int(g.Nodes.Capacity())

	full := make([]wordgraph.Node, capacity)
	used := make([]bool, capacity)
	for i, old := range target {
		full[i] = old
		used[old] = true
	}
	next := n
	for i := n; i < capacity; i++ {
		for used[next] {
			next++
		}
		full[i] = wordgraph.Node(next)
		used[next] = true
		next++
	}

	// holder[slot] = old identifier whose content currently sits at slot.
	// locate[oldID] = slot currently holding oldID's content.
	holder := make([]wordgraph.Node, capacity)
	locate := make([]wordgraph.Node, capacity)
	for i := 0; i < capacity; i++ {
		holder[i] = wordgraph.Node(i)
		locate[i] = wordgraph.Node(i)
	}

	for slot := 0; slot < capacity; slot++ {
		want := full[slot]
		if holder[slot] == want {
			continue
		}
		other := locate[want]
		g.Sourced.SwapNodes(wordgraph.Node(slot), other)
		displaced := holder[slot]
		holder[slot], holder[other] = holder[other], holder[slot]
		locate[displaced] = other
		locate[want] = wordgraph.Node(slot)
	}

	if err := g.Sourced.Restrict(n); err != nil {
		panic("managed: Standardize: " + err.Error())
	}
	g.Sourced.RebuildSources(0, wordgraph.Node(n))

	// The node manager's bookkeeping no longer matches post-swap
	// identifiers: rebuild its active list to exactly 0..n-1 and its free
	// list to everything >= n.
	g.Nodes.ResetActiveRange(uint32(n))

	CheckInvariants(g)
	return locate
}
