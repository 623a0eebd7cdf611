// Package stephen implements the Stephen-procedure driver (component F):
// given a presentation and a target word, it builds a linear chain for the
// word and saturates it against the presentation's rules until a pass
// produces no new nodes, edges, or coincidences, at which point the
// resulting word graph's accepted paths are exactly the words equal to the
// target word.
//
// Grounded on original_source's stephen.hpp (Stephen::run_impl,
// Stephen::complete_path, Stephen::accept_state) — this package's rule scan
// collapses the distillation's four-case "both complete / one stuck / both
// stuck" breakdown into one operation, complete-path, applied to both sides
// of a rule from the same node: complete-path walks a word from a node,
// creating a node and an edge (and, for inverse presentations, the formal
// inverse edge) for every undefined transition, so it never gets stuck. The
// two completions are then coincided if they differ. This is equivalent to
// the distillation's case analysis (each case is exactly what complete-path
// does when the word is already fully matched, partly matched, or not
// matched at all) and was chosen because the original's complete_path
// template body was not present in the retrieval pack to copy verbatim; see
// DESIGN.md Open Question resolutions.
package stephen

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kestrelgraph/stephen/managed"
	"github.com/kestrelgraph/stephen/presentation"
	"github.com/kestrelgraph/stephen/wordgraph"
)

// Sentinel errors for the driver.
var (
	// ErrEmptyAlphabet indicates the presentation passed to NewDriver has no letters.
	ErrEmptyAlphabet = errors.New("stephen: presentation has an empty alphabet")

	// ErrInvalidLetter indicates a letter of the target word is not in the alphabet.
	ErrInvalidLetter = errors.New("stephen: letter not in alphabet")

	// ErrIncompatibleInverse indicates a merge in an inverse-monoid context forced
	// two distinct formal inverses of the same letter to collide contradictorily.
	ErrIncompatibleInverse = errors.New("stephen: incompatible inverse presentation")
)

type indexRule struct {
	lhs, rhs []wordgraph.Letter
}

// Driver is component F: the Stephen-procedure state machine for one
// presentation and (at a time) one target word. Not safe for concurrent use
// (§5) — the only cross-goroutine interaction is the cancellation flag set
// by RunFor's context watcher.
type Driver struct {
	pres      *presentation.Presentation
	alphabet  []presentation.Letter
	invIndex  []int
	isInverse bool
	rules     []indexRule

	Reporter *Reporter

	graph       *managed.Graph
	word        []wordgraph.Letter
	acceptState wordgraph.Node
	finished    bool

	cancelled atomic.Bool

	rulesScanned        int
	coincidencesDrained int
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithReporter attaches a progress reporter.
func WithReporter(r *Reporter) Option {
	return func(d *Driver) { d.Reporter = r }
}

// NewDriver builds a plain (non-inverse) driver for pres: even if pres
// carries a formal inverse map, this driver never doubles an edge with its
// inverse. pres must have a non-empty alphabet; every rule's letters are
// assumed already validated by presentation.Builder.Build (which runs at
// construction time, before any Driver sees it).
func NewDriver(pres *presentation.Presentation, opts ...Option) (*Driver, error) {
	return newDriver(pres, false, opts)
}

// NewInverseDriver builds an inverse driver for pres: every edge c-x->d it
// creates also gets the formal inverse edge d-x⁻¹->c (§4.F point 5). pres
// must declare an involution via presentation.Builder.InverseOf for at
// least one letter, or NewInverseDriver reports ErrEmptyAlphabet's sibling
// condition by returning an error naming the missing inverse map.
func NewInverseDriver(pres *presentation.Presentation, opts ...Option) (*Driver, error) {
	if !pres.IsInverse() {
		return nil, fmt.Errorf("NewInverseDriver: presentation declares no inverse letters")
	}
	return newDriver(pres, true, opts)
}

func newDriver(pres *presentation.Presentation, isInverse bool, opts []Option) (*Driver, error) {
	alphabet := pres.Alphabet()
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("NewDriver: %w", ErrEmptyAlphabet)
	}

	invIndex := make([]int, len(alphabet))
	for i, a := range alphabet {
		invIndex[i] = -1
		if inv, ok := pres.Inverse(a); ok {
			j, _ := pres.LetterIndex(inv)
			invIndex[i] = j
		}
	}

	rules := make([]indexRule, 0, len(pres.Rules()))
	for _, r := range pres.Rules() {
		rules = append(rules, indexRule{
			lhs: toIndices(pres, r.LHS),
			rhs: toIndices(pres, r.RHS),
		})
	}

	d := &Driver{
		pres:      pres,
		alphabet:  alphabet,
		invIndex:  invIndex,
		isInverse: isInverse,
		rules:     rules,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func toIndices(pres *presentation.Presentation, word []presentation.Letter) []wordgraph.Letter {
	out := make([]wordgraph.Letter, len(word))
	for i, a := range word {
		idx, _ := pres.LetterIndex(a)
		out[i] = wordgraph.Letter(idx)
	}
	return out
}

// SetWord validates w against the alphabet, then resets the driver to a
// fresh linear chain of len(w)+1 nodes labelled w, with accept state
// tentatively the chain's end node. Discards any previous run's graph.
func (d *Driver) SetWord(w []presentation.Letter) error {
	idx := make([]wordgraph.Letter, len(w))
	for i, a := range w {
		j, ok := d.pres.LetterIndex(a)
		if !ok {
			return fmt.Errorf("SetWord: letter %d at position %d: %w", a, i, ErrInvalidLetter)
		}
		idx[i] = wordgraph.Letter(j)
	}

	g, err := managed.New(len(w)+1, len(d.alphabet))
	if err != nil {
		return fmt.Errorf("SetWord: %w", err)
	}
	g.OnMerge = func(min, max wordgraph.Node) {
		if d.acceptState == max {
			d.acceptState = min
		}
	}
	d.graph = g
	d.word = idx
	d.acceptState = wordgraph.Node(len(w))
	d.finished = false
	d.rulesScanned = 0
	d.coincidencesDrained = 0
	d.cancelled.Store(false)

	for i, x := range idx {
		d.addEdgeWithInverse(wordgraph.Node(i), x, wordgraph.Node(i+1))
	}
	return nil
}

// addEdgeWithInverse sets delta(c,x) = dst, then, for inverse
// presentations, ensures delta(dst, x⁻¹) = c: defines it if undefined,
// schedules a coincidence if it is already defined to something else
// (§4.F point 5).
func (d *Driver) addEdgeWithInverse(c wordgraph.Node, x wordgraph.Letter, dst wordgraph.Node) {
	if err := d.graph.AddEdge(c, x, dst); err != nil {
		panic("stephen: addEdgeWithInverse: " + err.Error())
	}
	if !d.isInverse {
		return
	}
	xinv := d.invIndex[x]
	if xinv < 0 {
		return
	}
	if t, ok := d.graph.Target(dst, wordgraph.Letter(xinv)); ok {
		if t != c {
			d.graph.Coincide(t, c)
		}
		return
	}
	if err := d.graph.AddEdge(dst, wordgraph.Letter(xinv), c); err != nil {
		panic("stephen: addEdgeWithInverse (inverse edge): " + err.Error())
	}
}

// completePath walks word from start, creating a node and an edge for
// every undefined transition, and returns the node the full word reaches.
func (d *Driver) completePath(word []wordgraph.Letter, start wordgraph.Node) wordgraph.Node {
	c := start
	for _, x := range word {
		if t, ok := d.graph.Target(c, x); ok {
			c = t
			continue
		}
		next := d.graph.NewNode()
		d.addEdgeWithInverse(c, x, next)
		c = next
	}
	return c
}

// Run saturates the graph against the presentation's rules: repeated
// passes over the active-node list, applying every rule at every node,
// until a pass makes no change. Resumable — a prior cancellation leaves
// the graph in a valid state and a later Run continues the same loop.
func (d *Driver) Run() error {
	return d.run(nil)
}

// RunFor behaves like Run but also checks ctx for cancellation between
// passes (never mid-drain, per §5). Returns ctx.Err() if cancelled before
// completion; the graph remains valid and Run/RunFor may be called again.
func (d *Driver) RunFor(ctx context.Context) error {
	return d.run(ctx)
}

func (d *Driver) run(ctx context.Context) error {
	if d.finished {
		return nil
	}
	d.cancelled.Store(false)
	for {
		if ctx != nil {
			select {
			case <-ctx.Done():
				d.cancelled.Store(true)
			default:
			}
		}
		if d.cancelled.Load() {
			return ctxErrOrNil(ctx)
		}

		dirty, err := d.pass()
		if err != nil {
			return err
		}
		if d.Reporter != nil {
			d.Reporter.maybeReport(time.Now(), len(d.graph.Nodes.ActiveNodes()), d.rulesScanned, d.coincidencesDrained)
		}
		if !dirty {
			break
		}
	}

	d.acceptState = d.standardizeAndRemap()
	d.finished = true
	return nil
}

func ctxErrOrNil(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// pass performs one scan over a snapshot of the active-node list, applying
// every rule at every node in order. Returns whether anything changed.
//
// Rule-scan conflicts (§4.E step 2's "else" branch) are drained as ordinary
// coincidences regardless of whether the presentation is an inverse one:
// the original's IncompatibleFunc hook (digraph-with-sources.hpp's
// merge_nodes) is exposed on managed.Graph as OnIncompat for a caller that
// wants it, but this driver leaves it unwired, since the exact criterion
// distinguishing a genuine inverse-semigroup-axiom contradiction from an
// ordinary coincidence is, per spec.md §9 OQ3, "asserted-but-not-documented
// in the source" — see DESIGN.md Open Question resolutions.
func (d *Driver) pass() (dirty bool, err error) {
	for _, c := range d.graph.Nodes.ActiveNodes() {
		if !d.graph.Nodes.IsActive(c) {
			continue
		}
		for _, r := range d.rules {
			d.rulesScanned++
			n1 := d.completePath(r.lhs, c)
			n2 := d.completePath(r.rhs, c)
			if n1 != n2 {
				d.graph.Coincide(n1, n2)
			}
			if d.graph.Nodes.HasCoincidence() {
				d.graph.ProcessCoincidences()
				d.coincidencesDrained++
				dirty = true
				if !d.graph.Nodes.IsActive(c) {
					break
				}
			}
		}
	}
	return dirty, nil
}

func (d *Driver) standardizeAndRemap() wordgraph.Node {
	relabel := d.graph.Standardize()
	if relabel == nil {
		return d.acceptState
	}
	return relabel[d.acceptState]
}

// AcceptState triggers Run if the driver has not finished, then returns the
// node that accepts the driver's current target word.
func (d *Driver) AcceptState() (wordgraph.Node, error) {
	if !d.finished {
		if err := d.Run(); err != nil {
			return wordgraph.Undefined, err
		}
	}
	return d.acceptState, nil
}

// WordGraph returns a read-only view of the driver's current word graph.
// Valid before a run completes too (a partial, in-progress graph).
func (d *Driver) WordGraph() wordgraph.ReadOnlyView { return d.graph }

// Accepts reports whether u is equal to the driver's target word in the
// presented semigroup: whether the unique path from node 0 labelled u
// exists and ends at the accept state. Triggers Run if not finished.
func (d *Driver) Accepts(u []presentation.Letter) (bool, error) {
	if _, err := d.AcceptState(); err != nil {
		return false, err
	}
	c := wordgraph.Node(0)
	for _, a := range u {
		idx, ok := d.pres.LetterIndex(a)
		if !ok {
			return false, fmt.Errorf("Accepts: %w", ErrInvalidLetter)
		}
		t, ok := d.graph.Target(c, wordgraph.Letter(idx))
		if !ok {
			return false, nil
		}
		c = t
	}
	return c == d.acceptState, nil
}

// IsLeftFactor reports whether u is a left factor of the target word: there
// exists v with u·v equal to the target word in the presented semigroup.
// Equivalently, the unique path from node 0 labelled u exists at all (any
// active node it reaches qualifies, since every active node in a completed
// Stephen word graph is reachable from node 0 and co-reachable to the
// accept state along some continuation).
func (d *Driver) IsLeftFactor(u []presentation.Letter) (bool, error) {
	if _, err := d.AcceptState(); err != nil {
		return false, err
	}
	c := wordgraph.Node(0)
	for _, a := range u {
		idx, ok := d.pres.LetterIndex(a)
		if !ok {
			return false, fmt.Errorf("IsLeftFactor: %w", ErrInvalidLetter)
		}
		t, ok := d.graph.Target(c, wordgraph.Letter(idx))
		if !ok {
			return false, nil
		}
		c = t
	}
	return true, nil
}

// Equal reports whether two finished drivers (over the same presentation)
// were run on equal words: d == other iff d accepts other's word and other
// accepts d's word (P8). Both are run to completion first if necessary.
func (d *Driver) Equal(other *Driver) (bool, error) {
	w1 := d.targetWordAsLetters()
	w2 := other.targetWordAsLetters()
	a, err := d.Accepts(w2)
	if err != nil {
		return false, err
	}
	b, err := other.Accepts(w1)
	if err != nil {
		return false, err
	}
	return a && b, nil
}

func (d *Driver) targetWordAsLetters() []presentation.Letter {
	out := make([]presentation.Letter, len(d.word))
	for i, idx := range d.word {
		out[i] = d.alphabet[idx]
	}
	return out
}
