// Package wordgraph implements the partial deterministic transition table
// of a Stephen word graph (component B) and its predecessor-indexed
// extension (component C, "sourced word graph").
//
// Graph holds delta as a dtable.Table sized nodes x outDegree and is
// deliberately oblivious to node liveness — that is the node manager's
// concern (package nodes). Sourced wraps Graph and maintains, for every
// (node, label) pair, a singly-linked list of predecessors so that "who
// points at this node under this label" is a walk over just those
// predecessors instead of an O(nodes) scan.
//
// Grounded on the teacher's core/types.go + core/api.go (struct shape,
// sentinel errors, thin facade) and on original_source's word-graph.hpp /
// digraph-with-sources.hpp, which this spec distills.
package wordgraph

import (
	"errors"
	"fmt"

	"github.com/kestrelgraph/stephen/dtable"
)

// Node is a node identifier: an index into [0, capacity).
type Node = uint32

// Letter is a small non-negative label index into [0, outDegree).
type Letter = uint32

// Undefined marks "no target" / "end of predecessor list".
const Undefined Node = dtable.Undefined

// Sentinel errors for transition-table operations.
var (
	// ErrEdgeDefined indicates AddEdge was called on an already-defined edge.
	ErrEdgeDefined = errors.New("wordgraph: edge already defined")

	// ErrEdgeUndefined indicates RemoveEdge/Target-consuming code found no edge.
	ErrEdgeUndefined = errors.New("wordgraph: edge undefined")
)

// ReadOnlyView is the §6 "Word graph (exposed output)" contract: a
// read-only surface over a word graph, satisfied by both Graph and
// Sourced (via embedding) and by managed.Graph.
type ReadOnlyView interface {
	NumberOfNodes() int
	NumberOfEdges() int
	Target(c Node, x Letter) (Node, bool)
	ForEachEdge(c Node, fn func(x Letter, d Node))
}

// Graph is the partial deterministic transition table delta(c,x) -> d.
type Graph struct {
	delta     *dtable.Table
	nodes     int
	outDegree int
}

var _ ReadOnlyView = (*Graph)(nil)

// NewGraph allocates a graph with nodes nodes and the given out-degree, all
// edges initially undefined.
func NewGraph(nodes, outDegree int) (*Graph, error) {
	t, err := dtable.New(nodes, outDegree, Undefined)
	if err != nil {
		return nil, fmt.Errorf("wordgraph: NewGraph: %w", err)
	}
	return &Graph{delta: t, nodes: nodes, outDegree: outDegree}, nil
}

// NumberOfNodes returns the current node count (live or not — this layer
// tracks no liveness).
func (g *Graph) NumberOfNodes() int { return g.nodes }

// OutDegree returns the current out-degree (alphabet size).
func (g *Graph) OutDegree() int { return g.outDegree }

// Target returns (d, true) if delta(c,x) is defined, else (Undefined, false).
func (g *Graph) Target(c Node, x Letter) (Node, bool) {
	d := g.delta.GetUnsafe(int(c), int(x))
	return d, d != Undefined
}

// rawTarget returns delta(c,x) verbatim, Undefined included, with no ok flag.
func (g *Graph) rawTarget(c Node, x Letter) Node {
	return g.delta.GetUnsafe(int(c), int(x))
}

// addEdgeRaw sets delta(c,x) = d. Precondition: delta(c,x) is undefined.
// Unexported: all mutation of delta must go through Sourced so its
// predecessor index cannot desync (see package doc).
func (g *Graph) addEdgeRaw(c Node, x Letter, d Node) error {
	if g.delta.GetUnsafe(int(c), int(x)) != Undefined {
		return fmt.Errorf("wordgraph: AddEdge(%d,%d): %w", c, x, ErrEdgeDefined)
	}
	g.delta.SetUnsafe(int(c), int(x), d)
	return nil
}

// removeEdgeRaw clears delta(c,x). Precondition: defined.
func (g *Graph) removeEdgeRaw(c Node, x Letter) error {
	if g.delta.GetUnsafe(int(c), int(x)) == Undefined {
		return fmt.Errorf("wordgraph: RemoveEdge(%d,%d): %w", c, x, ErrEdgeUndefined)
	}
	g.delta.SetUnsafe(int(c), int(x), Undefined)
	return nil
}

// AddNodes grows the node count by k, new nodes with every label undefined.
func (g *Graph) AddNodes(k int) {
	g.delta.AddRows(k)
	g.nodes += k
}

// AddToOutDegree grows the out-degree (alphabet) by k.
func (g *Graph) AddToOutDegree(k int) {
	g.delta.AddCols(k)
	g.outDegree += k
}

// Restrict truncates the graph to its first m nodes. No reallocation.
func (g *Graph) Restrict(m int) error {
	if err := g.delta.ShrinkRows(m); err != nil {
		return fmt.Errorf("wordgraph: Restrict(%d): %w", m, err)
	}
	g.nodes = m
	return nil
}

// NumberOfEdges counts defined transitions. Complexity: O(nodes*outDegree).
func (g *Graph) NumberOfEdges() int {
	n := 0
	for c := 0; c < g.nodes; c++ {
		for x := 0; x < g.outDegree; x++ {
			if g.delta.GetUnsafe(c, x) != Undefined {
				n++
			}
		}
	}
	return n
}

// ForEachEdge calls fn(x, d) for every label x with delta(c,x) defined, in
// ascending label order.
func (g *Graph) ForEachEdge(c Node, fn func(x Letter, d Node)) {
	for x := 0; x < g.outDegree; x++ {
		if d := g.delta.GetUnsafe(int(c), x); d != Undefined {
			fn(Letter(x), d)
		}
	}
}
