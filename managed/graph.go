// Package managed composes wordgraph.Sourced (components B/C) with
// nodes.Manager (component D) into the merge engine (component E): the
// cascading coincidence drain that is the heart of this module, plus the
// BFS-order standardisation pass.
//
// Grounded on original_source's digraph-with-sources.hpp merge_nodes
// template method (this spec's distillation source) and on the teacher's
// core/methods_clone.go defensive-copy idiom for the bulk structural
// operations (Standardize).
package managed

import (
	"errors"
	"fmt"

	"github.com/kestrelgraph/stephen/nodes"
	"github.com/kestrelgraph/stephen/wordgraph"
)

// ErrIncompatible names the condition OnIncompat reports: a merge forcing
// two distinct targets to coincide in a context (inverse-monoid
// presentations) where that is a contradiction rather than an ordinary
// coincidence. No function in this package returns it; OnIncompat receives
// the two nodes, not an error.
var ErrIncompatible = errors.New("managed: incompatible merge")

// Graph is the managed word graph: E = C + D.
type Graph struct {
	Sourced *wordgraph.Sourced
	Nodes   *nodes.Manager

	outDegree int

	// OnNewEdge, when non-nil, is invoked for every (node,label) whose
	// outgoing edge was newly defined or retargeted during a merge, so a
	// driver (package stephen) can re-scan it on the next pass.
	OnNewEdge func(p wordgraph.Node, x wordgraph.Letter)

	// OnIncompat, when non-nil, is invoked for every merge conflict
	// (two distinct targets forced to coincide) in addition to the
	// coincidence this always schedules; a driver uses it to detect
	// inverse-monoid contradictions (§7 IncompatibleInverse).
	OnIncompat func(a, b wordgraph.Node)

	// OnMerge, when non-nil, is invoked once per retirement with
	// (survivor, retired) so a caller tracking a node identifier across
	// merges (a driver's accept state) can follow it.
	OnMerge func(min, max wordgraph.Node)
}

// New allocates a managed graph with n initial nodes (0..n-1, all active)
// and the given out-degree (alphabet size).
func New(n int, outDegree int) (*Graph, error) {
	s, err := wordgraph.NewSourced(n, outDegree)
	if err != nil {
		return nil, fmt.Errorf("managed: New: %w", err)
	}
	return &Graph{
		Sourced:   s,
		Nodes:     nodes.NewManager(uint32(n)),
		outDegree: outDegree,
	}, nil
}

// NumberOfNodes returns the graph's current node capacity (not all of it
// necessarily active — see Nodes.ActiveNodes).
func (g *Graph) NumberOfNodes() int { return g.Sourced.NumberOfNodes() }

// NumberOfEdges delegates to the sourced word graph.
func (g *Graph) NumberOfEdges() int { return g.Sourced.NumberOfEdges() }

// Target delegates to the sourced word graph.
func (g *Graph) Target(c wordgraph.Node, x wordgraph.Letter) (wordgraph.Node, bool) {
	return g.Sourced.Target(c, x)
}

// ForEachEdge delegates to the sourced word graph.
func (g *Graph) ForEachEdge(c wordgraph.Node, fn func(wordgraph.Letter, wordgraph.Node)) {
	g.Sourced.ForEachEdge(c, fn)
}

var _ wordgraph.ReadOnlyView = (*Graph)(nil)

// NewNode allocates a fresh active node, growing the node manager and the
// word graph's row count together (geometric doubling) when the free list
// is exhausted.
func (g *Graph) NewNode() wordgraph.Node {
	if !g.Nodes.HasFree() {
		oldCap := g.Nodes.Capacity()
		newCap := oldCap * 2
		if newCap == 0 {
			newCap = 1
		}
		g.Sourced.AddNodes(int(newCap - oldCap))
		g.Nodes.Grow(newCap)
	}
	c, ok := g.Nodes.NewNode()
	if !ok {
		panic("managed: NewNode: node manager out of capacity after growth")
	}
	return c
}

// AddToOutDegree grows the alphabet by k, extending both the transition
// table and the predecessor index.
func (g *Graph) AddToOutDegree(k int) {
	g.Sourced.AddToOutDegree(k)
	g.outDegree += k
}

// OutDegree returns the current out-degree (alphabet size).
func (g *Graph) OutDegree() int { return g.outDegree }

// AddEdge sets delta(c,x) = d, precondition delta(c,x) undefined.
func (g *Graph) AddEdge(c wordgraph.Node, x wordgraph.Letter, d wordgraph.Node) error {
	return g.Sourced.AddEdge(c, x, d)
}

// Coincide schedules u and v as equal; draining happens in
// ProcessCoincidences.
func (g *Graph) Coincide(u, v wordgraph.Node) {
	g.Nodes.Coincide(u, v)
}
