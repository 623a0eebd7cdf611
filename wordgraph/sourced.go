package wordgraph

import (
	"fmt"

	"github.com/kestrelgraph/stephen/dtable"
)

// Sourced wraps Graph with a predecessor index: for every (c,x), a
// singly-linked list of nodes p with delta(p,x) = c. preimInit holds list
// heads (indexed by the list's owner node c); preimNext holds successors
// (indexed by the predecessor p itself). Both use Undefined as terminator.
//
// Every mutation of delta funnels through Sourced (Graph's raw mutators are
// unexported) so preimInit/preimNext can never desync from delta — the
// exact invariant I2 of the specification.
type Sourced struct {
	*Graph
	preimInit *dtable.Table
	preimNext *dtable.Table
}

var _ ReadOnlyView = (*Sourced)(nil)

// NewSourced allocates a sourced word graph with nodes nodes and the given
// out-degree.
func NewSourced(nodes, outDegree int) (*Sourced, error) {
	g, err := NewGraph(nodes, outDegree)
	if err != nil {
		return nil, err
	}
	pi, err := dtable.New(nodes, outDegree, Undefined)
	if err != nil {
		return nil, fmt.Errorf("wordgraph: NewSourced: %w", err)
	}
	pn, err := dtable.New(nodes, outDegree, Undefined)
	if err != nil {
		return nil, fmt.Errorf("wordgraph: NewSourced: %w", err)
	}
	return &Sourced{Graph: g, preimInit: pi, preimNext: pn}, nil
}

// FirstSource returns the head of (c,x)'s predecessor list.
func (s *Sourced) FirstSource(c Node, x Letter) (Node, bool) {
	p := s.preimInit.GetUnsafe(int(c), int(x))
	return p, p != Undefined
}

// NextSource returns the successor of p on whatever list it currently
// belongs to under label x.
func (s *Sourced) NextSource(p Node, x Letter) (Node, bool) {
	n := s.preimNext.GetUnsafe(int(p), int(x))
	return n, n != Undefined
}

// addSource prepends p to (c,x)'s predecessor list.
func (s *Sourced) addSource(c Node, x Letter, p Node) {
	head := s.preimInit.GetUnsafe(int(c), int(x))
	s.preimNext.SetUnsafe(int(p), int(x), head)
	s.preimInit.SetUnsafe(int(c), int(x), p)
}

// removeSource unlinks p from (c,x)'s predecessor list. p must currently be
// on that list exactly once (invariant I2).
func (s *Sourced) removeSource(c Node, x Letter, p Node) {
	head := s.preimInit.GetUnsafe(int(c), int(x))
	if head == p {
		s.preimInit.SetUnsafe(int(c), int(x), s.preimNext.GetUnsafe(int(p), int(x)))
	} else {
		prev := head
		for prev != Undefined {
			next := s.preimNext.GetUnsafe(int(prev), int(x))
			if next == p {
				s.preimNext.SetUnsafe(int(prev), int(x), s.preimNext.GetUnsafe(int(p), int(x)))
				break
			}
			prev = next
		}
	}
	s.preimNext.SetUnsafe(int(p), int(x), Undefined)
}

// setPredecessorList overwrites (node,x)'s predecessor list wholesale with
// the entries of list. Each entry is prepended in turn, so the stored list
// holds them in reverse order (list order carries no meaning per the
// specification — it is only ever walked, never compared).
func (s *Sourced) setPredecessorList(node Node, x Letter, list []Node) {
	head := Undefined
	for _, p := range list {
		s.preimNext.SetUnsafe(int(p), int(x), head)
		head = p
	}
	s.preimInit.SetUnsafe(int(node), int(x), head)
}

// AddEdge sets delta(c,x) = d and registers c on d's predecessor list.
// Precondition: delta(c,x) is undefined.
func (s *Sourced) AddEdge(c Node, x Letter, d Node) error {
	if err := s.Graph.addEdgeRaw(c, x, d); err != nil {
		return err
	}
	s.addSource(d, x, c)
	return nil
}

// RemoveEdge clears delta(c,x), unlinking c from its target's predecessor
// list first. Precondition: delta(c,x) is defined.
func (s *Sourced) RemoveEdge(c Node, x Letter) error {
	d, ok := s.Graph.Target(c, x)
	if !ok {
		return fmt.Errorf("wordgraph: RemoveEdge(%d,%d): %w", c, x, ErrEdgeUndefined)
	}
	s.removeSource(d, x, c)
	return s.Graph.removeEdgeRaw(c, x)
}

// IsSource reports whether d is a predecessor of c under x. Linear in the
// list's length; intended for debug assertions only (§4.C).
func (s *Sourced) IsSource(c Node, d Node, x Letter) bool {
	for p, ok := s.FirstSource(c, x); ok; p, ok = s.NextSource(p, x) {
		if p == d {
			return true
		}
	}
	return false
}

// AddNodes grows the node count by k, keeping preimInit/preimNext in step.
func (s *Sourced) AddNodes(k int) {
	s.Graph.AddNodes(k)
	s.preimInit.AddRows(k)
	s.preimNext.AddRows(k)
}

// AddToOutDegree grows the out-degree by k, keeping preimInit/preimNext in step.
func (s *Sourced) AddToOutDegree(k int) {
	s.preimInit.AddCols(k)
	s.preimNext.AddCols(k)
	s.Graph.AddToOutDegree(k)
}

// Restrict truncates the graph and its predecessor index to the first m
// nodes. No reallocation. Overrides Graph.Restrict so preimInit/preimNext
// stay in step with delta.
func (s *Sourced) Restrict(m int) error {
	if err := s.preimInit.ShrinkRows(m); err != nil {
		return fmt.Errorf("wordgraph: Restrict(%d): %w", m, err)
	}
	if err := s.preimNext.ShrinkRows(m); err != nil {
		return fmt.Errorf("wordgraph: Restrict(%d): %w", m, err)
	}
	return s.Graph.Restrict(m)
}

// ClearSources unlinks c from every predecessor list it sits on, by
// walking c's outgoing edges and scanning each target's list.
func (s *Sourced) ClearSources(c Node) {
	for x := 0; x < s.OutDegree(); x++ {
		if t := s.rawTarget(c, Letter(x)); t != Undefined {
			s.removeSource(t, Letter(x), c)
		}
	}
}

// ClearSourcesAndTargets unlinks c from every predecessor list it sits on
// and then clears c's own outgoing row.
func (s *Sourced) ClearSourcesAndTargets(c Node) {
	for x := 0; x < s.OutDegree(); x++ {
		if t := s.rawTarget(c, Letter(x)); t != Undefined {
			s.removeSource(t, Letter(x), c)
			s.delta.SetUnsafe(int(c), x, Undefined)
		}
		s.preimInit.SetUnsafe(int(c), x, Undefined)
	}
}

// RebuildSources resets the predecessor lists owned by nodes in
// [first,last) and re-inserts an entry for every outgoing edge of those
// nodes. Entries that nodes in the range already hold on lists owned by
// nodes outside it are not removed first, and edges into the range from
// nodes outside it are not re-inserted. Used after a bulk identifier
// permutation (Standardize), on the whole restricted graph.
func (s *Sourced) RebuildSources(first, last Node) {
	for c := first; c < last; c++ {
		for x := 0; x < s.OutDegree(); x++ {
			s.preimInit.SetUnsafe(int(c), x, Undefined)
		}
	}
	for c := first; c < last; c++ {
		for x := 0; x < s.OutDegree(); x++ {
			if t := s.rawTarget(c, Letter(x)); t != Undefined {
				s.addSource(t, Letter(x), c)
			}
		}
	}
}

// phi is the identifier-swap map used by SwapNodes: it exchanges c and d,
// leaving every other identifier (including Undefined) unchanged.
func phi(n, c, d Node) Node {
	switch n {
	case c:
		return d
	case d:
		return c
	default:
		return n
	}
}

// SwapNodes exchanges the identifiers c and d globally: every edge with an
// endpoint at c now has that endpoint at d, and vice versa. Both c and d
// are assumed active (valid, in-range) nodes; this performs no liveness
// checks itself.
//
// Self-loops and mutual c<->d edges are handled by applying phi to both
// endpoints of every edge touching {c,d} rather than special-casing them:
// a self-loop at c becomes a self-loop at d, and a mutual c<->d edge stays
// mutual.
func (s *Sourced) SwapNodes(c, d Node) {
	if c == d {
		return
	}
	for x := 0; x < s.OutDegree(); x++ {
		label := Letter(x)
		oldTc := s.rawTarget(c, label)
		oldTd := s.rawTarget(d, label)

		extC := s.externalPredecessors(c, label, c, d)
		extD := s.externalPredecessors(d, label, c, d)

		for _, p := range extC {
			s.delta.SetUnsafe(int(p), x, d)
		}
		for _, p := range extD {
			s.delta.SetUnsafe(int(p), x, c)
		}

		// target-side fixup: an external target of c's (or d's) old
		// outgoing edge must swap which of {c,d} it lists as predecessor.
		if oldTc != Undefined && oldTc != c && oldTc != d {
			s.removeSource(oldTc, label, c)
			s.addSource(oldTc, label, d)
		}
		if oldTd != Undefined && oldTd != c && oldTd != d {
			s.removeSource(oldTd, label, d)
			s.addSource(oldTd, label, c)
		}

		s.delta.SetUnsafe(int(d), x, phi(oldTc, c, d))
		s.delta.SetUnsafe(int(c), x, phi(oldTd, c, d))

		listC := append([]Node{}, extD...)
		listD := append([]Node{}, extC...)
		if oldTc == d {
			listC = append(listC, d)
		}
		if oldTd == d {
			listC = append(listC, c)
		}
		if oldTc == c {
			listD = append(listD, d)
		}
		if oldTd == c {
			listD = append(listD, c)
		}
		s.setPredecessorList(c, label, listC)
		s.setPredecessorList(d, label, listD)
	}
}

// externalPredecessors returns the predecessors of node under label,
// excluding exclude1 and exclude2 (used by SwapNodes to separate
// third-party predecessors from self-loop/mutual-edge bookkeeping).
func (s *Sourced) externalPredecessors(node Node, label Letter, exclude1, exclude2 Node) []Node {
	var out []Node
	for p, ok := s.FirstSource(node, label); ok; p, ok = s.NextSource(p, label) {
		if p != exclude1 && p != exclude2 {
			out = append(out, p)
		}
	}
	return out
}

// RenameNode makes d inherit all in- and out-edges of c, leaving c
// disconnected. Precondition: c active, d inactive (no prior edges).
// Cheaper than SwapNodes by half since d starts with nothing to preserve.
func (s *Sourced) RenameNode(c, d Node) {
	for x := 0; x < s.OutDegree(); x++ {
		label := Letter(x)
		oldTarget := s.rawTarget(c, label)
		selfLoop := oldTarget == c

		ext := s.externalPredecessors(c, label, c, Undefined)

		if oldTarget != Undefined && !selfLoop {
			s.removeSource(oldTarget, label, c)
		}
		s.delta.SetUnsafe(int(c), x, Undefined)
		s.preimInit.SetUnsafe(int(c), x, Undefined)

		newTarget := oldTarget
		if selfLoop {
			newTarget = d
		}
		s.delta.SetUnsafe(int(d), x, newTarget)

		for _, p := range ext {
			s.delta.SetUnsafe(int(p), x, d)
		}
		list := ext
		if selfLoop {
			list = append(list, d)
		}
		s.setPredecessorList(d, label, list)

		if newTarget != Undefined && !selfLoop {
			s.addSource(newTarget, label, d)
		}
	}
}

// MergeNodes folds max's incoming and outgoing edges onto min, per the
// three-step procedure of SPEC_FULL.md §4.E. It does not touch node
// liveness or the free list — the caller (package managed, which owns the
// node manager) retires max afterwards.
//
// onNewEdge(p,x) is invoked whenever an edge from p under x newly exists or
// changed target as a result of the fold, so a driver can re-scan it.
// onConflict(a,b) is invoked when max and min both already had an outgoing
// edge under the same label to distinct targets a and b; the caller decides
// whether to push a coincidence and/or treat it as an inverse-monoid
// contradiction.
func (s *Sourced) MergeNodes(minNode, maxNode Node, onNewEdge func(p Node, x Letter), onConflict func(a, b Node)) {
	for x := 0; x < s.OutDegree(); x++ {
		label := Letter(x)

		// Step 1: incoming edges of max.
		p := s.preimInit.GetUnsafe(int(maxNode), x)
		s.preimInit.SetUnsafe(int(maxNode), x, Undefined)
		for p != Undefined {
			next := s.preimNext.GetUnsafe(int(p), x)
			s.delta.SetUnsafe(int(p), x, minNode)
			head := s.preimInit.GetUnsafe(int(minNode), x)
			s.preimNext.SetUnsafe(int(p), x, head)
			s.preimInit.SetUnsafe(int(minNode), x, p)
			onNewEdge(p, label)
			p = next
		}

		// Step 2: outgoing edge of max.
		t := s.rawTarget(maxNode, label)
		if t == Undefined {
			continue
		}
		minTarget := s.rawTarget(minNode, label)
		switch {
		case minTarget == Undefined:
			s.removeSource(t, label, maxNode)
			s.delta.SetUnsafe(int(minNode), x, t)
			s.addSource(t, label, minNode)
			onNewEdge(minNode, label)
		case minTarget == t:
			s.removeSource(t, label, maxNode)
		default:
			s.removeSource(t, label, maxNode)
			onConflict(minTarget, t)
		}
		s.delta.SetUnsafe(int(maxNode), x, Undefined)
	}
}
