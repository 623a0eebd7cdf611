//go:build stephendebug

package managed

import "github.com/kestrelgraph/stephen/wordgraph"

// InvariantViolation is the panic value CheckInvariants raises when built
// with the stephendebug tag. Production builds never construct one.
type InvariantViolation struct {
	Rule string
	Node wordgraph.Node
}

func (e InvariantViolation) Error() string {
	return "managed: invariant " + e.Rule + " violated at node " + itoa(int(e.Node))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// CheckInvariants validates I1-I5 (spec.md §3) against g's current state.
// Only compiled into `go build -tags stephendebug` binaries; ordinary
// builds call the no-op in invariants_prod.go instead, so the O(active *
// outDegree) scan never runs in production.
func CheckInvariants(g *Graph) {
	active := g.Nodes.ActiveNodes()
	activeSet := make(map[wordgraph.Node]bool, len(active))
	for _, c := range active {
		activeSet[wordgraph.Node(c)] = true
	}

	// I5: start node 0 is always active.
	if !activeSet[0] {
		panic(InvariantViolation{Rule: "I5", Node: 0})
	}

	// I1: every defined delta(c,x) for active c targets an active node.
	for _, c := range active {
		node := wordgraph.Node(c)
		g.ForEachEdge(node, func(_ wordgraph.Letter, d wordgraph.Node) {
			if !activeSet[d] {
				panic(InvariantViolation{Rule: "I1", Node: node})
			}
		})
	}

	// I2/I3: predecessor lists are exact and reference only active nodes.
	for _, c := range active {
		node := wordgraph.Node(c)
		for x := 0; x < g.OutDegree(); x++ {
			label := wordgraph.Letter(x)
			for p, ok := g.Sourced.FirstSource(node, label); ok; p, ok = g.Sourced.NextSource(p, label) {
				if !activeSet[p] {
					panic(InvariantViolation{Rule: "I3", Node: p})
				}
				if t, tok := g.Target(p, label); !tok || t != node {
					panic(InvariantViolation{Rule: "I2", Node: p})
				}
			}
		}
	}

	// I4: the coincidence stack is empty outside a drain; CheckInvariants
	// itself is only ever called between drains.
	if g.Nodes.HasCoincidence() {
		panic(InvariantViolation{Rule: "I4", Node: wordgraph.Undefined})
	}
}
