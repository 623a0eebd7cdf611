// Package nodes implements the node manager (component D): the free-list
// of node identifiers, active-node iteration in insertion order, capacity
// growth, and the LIFO coincidence stack drained by package managed.
//
// Representation: an intrusive doubly-linked active list threaded through
// nextActive/prevActive (with head/tail sentinels), and a singly-linked
// free list threaded through nextFree. Grounded on the teacher's
// map-based vertex bookkeeping in core/types.go, reworked into an
// array-backed intrusive list (the "arena + index" design note of
// SPEC_FULL.md §9 — no owned pointers, only integer identifiers).
//
// Manager owns no edge data and never grows itself implicitly: growing the
// identifier range must also grow the wordgraph tables that are sized to
// match, so package managed (which owns both) decides when and by how much
// to grow, via Grow, before calling NewNode.
package nodes

// Undefined is the sentinel identifier shared with package wordgraph.
const Undefined uint32 = ^uint32(0)

// Pair is an unordered pair of nodes asserted equal.
type Pair struct {
	U, V uint32
}

// Manager owns the active/free node bookkeeping and the coincidence stack.
type Manager struct {
	nextActive []uint32
	prevActive []uint32
	headActive uint32
	tailActive uint32
	isActive   []bool

	nextFree []uint32
	freeHead uint32

	capacity uint32

	coincidences []Pair
}

// NewManager allocates a manager with an initial pool of n active nodes,
// identifiers 0..n-1, linked in ascending order. Its free list starts empty.
func NewManager(n uint32) *Manager {
	m := &Manager{
		headActive: Undefined,
		tailActive: Undefined,
		freeHead:   Undefined,
	}
	m.growArrays(n)
	for i := uint32(0); i < n; i++ {
		m.linkActiveTail(i)
	}
	return m
}

// growArrays resizes the bookkeeping arrays to capacity `to`, with no
// effect on the free list — callers decide separately whether the newly
// added range should be active (NewManager) or free (Grow).
func (m *Manager) growArrays(to uint32) {
	if to <= m.capacity {
		return
	}
	newNext := make([]uint32, to)
	newPrev := make([]uint32, to)
	newFree := make([]uint32, to)
	newIsActive := make([]bool, to)
	copy(newNext, m.nextActive)
	copy(newPrev, m.prevActive)
	copy(newFree, m.nextFree)
	copy(newIsActive, m.isActive)
	for i := m.capacity; i < to; i++ {
		newNext[i] = Undefined
		newPrev[i] = Undefined
		newFree[i] = Undefined
	}
	m.nextActive, m.prevActive, m.nextFree, m.isActive = newNext, newPrev, newFree, newIsActive
	m.capacity = to
}

// Grow extends capacity to `to`, pushing every newly added identifier onto
// the free list. The caller is responsible for growing the matching
// wordgraph tables in lockstep first.
func (m *Manager) Grow(to uint32) {
	old := m.capacity
	m.growArrays(to)
	for i := old; i < to; i++ {
		m.pushFree(i)
	}
}

func (m *Manager) linkActiveTail(c uint32) {
	m.prevActive[c] = m.tailActive
	m.nextActive[c] = Undefined
	if m.tailActive == Undefined {
		m.headActive = c
	} else {
		m.nextActive[m.tailActive] = c
	}
	m.tailActive = c
	m.isActive[c] = true
}

func (m *Manager) unlinkActive(c uint32) {
	prev, next := m.prevActive[c], m.nextActive[c]
	if prev == Undefined {
		m.headActive = next
	} else {
		m.nextActive[prev] = next
	}
	if next == Undefined {
		m.tailActive = prev
	} else {
		m.prevActive[next] = prev
	}
	m.prevActive[c] = Undefined
	m.nextActive[c] = Undefined
	m.isActive[c] = false
}

// IsActive reports whether c is currently an active node. O(1).
func (m *Manager) IsActive(c uint32) bool {
	if c >= m.capacity {
		return false
	}
	return m.isActive[c]
}

func (m *Manager) pushFree(c uint32) {
	m.nextFree[c] = m.freeHead
	m.freeHead = c
}

func (m *Manager) popFree() (uint32, bool) {
	if m.freeHead == Undefined {
		return 0, false
	}
	c := m.freeHead
	m.freeHead = m.nextFree[c]
	m.nextFree[c] = Undefined
	return c, true
}

// Capacity returns the current identifier range [0, Capacity()).
func (m *Manager) Capacity() uint32 { return m.capacity }

// HasFree reports whether a free identifier is available without growing.
func (m *Manager) HasFree() bool { return m.freeHead != Undefined }

// NewNode pops a free identifier and appends it to the active list. ok is
// false when the free list is empty — the caller must Grow first.
func (m *Manager) NewNode() (c uint32, ok bool) {
	c, ok = m.popFree()
	if !ok {
		return 0, false
	}
	m.linkActiveTail(c)
	return c, true
}

// FreeNode removes c from the active list and returns its identifier to
// the free pool.
func (m *Manager) FreeNode(c uint32) {
	m.unlinkActive(c)
	m.pushFree(c)
}

// ActiveNodes returns the active identifiers in active-list order (the
// order later mutations, in particular merges, must respect per §5).
func (m *Manager) ActiveNodes() []uint32 {
	out := make([]uint32, 0, m.capacity)
	for c := m.headActive; c != Undefined; c = m.nextActive[c] {
		out = append(out, c)
	}
	return out
}

// ResetActiveRange rebuilds the active list to be exactly the identifiers
// [0, n) in ascending order and the free list to be exactly [n, Capacity())
// in ascending order, discarding whatever active/free state existed before.
//
// Used only by package managed's Standardize, after a node-identifier
// permutation and restriction has made [0, n) the true active range but
// left the manager's own bookkeeping (built under the pre-permutation
// identifiers) stale.
func (m *Manager) ResetActiveRange(n uint32) {
	m.headActive, m.tailActive = Undefined, Undefined
	m.freeHead = Undefined
	for i := m.capacity; i > n; i-- {
		m.isActive[i-1] = false
		m.pushFree(i - 1)
	}
	for i := uint32(0); i < n; i++ {
		m.linkActiveTail(i)
	}
}

// Coincide pushes the pair (u,v) onto the coincidence stack unless u == v.
func (m *Manager) Coincide(u, v uint32) {
	if u == v {
		return
	}
	m.coincidences = append(m.coincidences, Pair{U: u, V: v})
}

// HasCoincidence reports whether the stack is non-empty.
func (m *Manager) HasCoincidence() bool { return len(m.coincidences) > 0 }

// PopCoincidence pops the most recently pushed pair.
func (m *Manager) PopCoincidence() (Pair, bool) {
	n := len(m.coincidences)
	if n == 0 {
		return Pair{}, false
	}
	p := m.coincidences[n-1]
	m.coincidences = m.coincidences[:n-1]
	return p, true
}
