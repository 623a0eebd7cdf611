// Package stephen implements Stephen's procedure for computing the word
// graph of a finitely presented semigroup or monoid, together with the
// presentations, word graphs and path iterators it is built from.
//
// The model: an alphabet and a finite set of rewriting rules (a
// presentation, package presentation) are saturated against a single
// starting word by the driver in package stephen, producing a doubly
// indexed word graph (package wordgraph) whose nodes stand for
// left-congruence classes reachable from that word. Two words are
// accepted by the same node exactly when the presentation proves them
// equal. The saturation itself proceeds by repeatedly completing each
// rule's two sides from every live node and coinciding the results when
// they disagree; coincidences cascade through a managed merge engine
// (package managed) built on a free-list node manager (package nodes)
// and a row-major dynamic table (package dtable).
//
// Once a driver has run to completion, package paths enumerates the
// words its word graph accepts or admits as left factors, in short-lex
// order.
//
// Subpackages:
//
//	dtable/       — dynamic 2-D table of node identifiers
//	wordgraph/    — partial deterministic transition table + predecessor index
//	nodes/        — free-list node manager + coincidence stack
//	managed/      — cascading merge engine + BFS standardisation
//	presentation/ — alphabet/rules/involution container + fluent builder
//	stephen/      — the driver: set_word, run, accept_state
//	paths/        — word/left-factor enumeration over a finished word graph
package stephen
