package paths

import (
	"errors"
	"fmt"

	"github.com/kestrelgraph/stephen/wordgraph"
)

// ErrInvalidRange indicates minLen > maxLen, or a negative minLen.
var ErrInvalidRange = errors.New("paths: invalid length range")

// ErrInfiniteEnumeration indicates maxLen is unbounded (negative) and the
// reachable sub-automaton contains a cycle, so the enumeration has no end.
var ErrInfiniteEnumeration = errors.New("paths: enumeration is infinite")

// WordIterator yields words in short-lex order (shortest first, ties broken
// lexicographically by letter value) and can be replayed via Reset.
type WordIterator interface {
	// Next advances to the next word and returns it, or returns (nil, false)
	// once exhausted.
	Next() ([]wordgraph.Letter, bool)
	// Reset rewinds the iterator to its first word.
	Reset()
}

type sliceIterator struct {
	words []wordgraph.Letter
	// offsets[i], offsets[i+1] delimit words[i]'s slice.
	offsets []int
	pos     int
}

func (it *sliceIterator) Next() ([]wordgraph.Letter, bool) {
	if it.pos >= len(it.offsets)-1 {
		return nil, false
	}
	w := it.words[it.offsets[it.pos]:it.offsets[it.pos+1]]
	it.pos++
	return w, true
}

func (it *sliceIterator) Reset() { it.pos = 0 }

func newSliceIterator(words [][]wordgraph.Letter) *sliceIterator {
	flat := make([]wordgraph.Letter, 0, len(words))
	offsets := make([]int, 0, len(words)+1)
	offsets = append(offsets, 0)
	for _, w := range words {
		flat = append(flat, w...)
		offsets = append(offsets, len(flat))
	}
	return &sliceIterator{words: flat, offsets: offsets}
}

// WordsAccepted enumerates, in short-lex order, every word w with
// minLen <= len(w) <= maxLen such that the path from start labelled w ends
// at accept. maxLen < 0 means unbounded, valid only when the sub-automaton
// reachable from start has no cycle (HasCycleOnPath reports false).
func WordsAccepted(view wordgraph.ReadOnlyView, start, accept wordgraph.Node, minLen, maxLen int) (WordIterator, error) {
	bound, err := resolveBound(view, start, minLen, maxLen)
	if err != nil {
		return nil, fmt.Errorf("WordsAccepted: %w", err)
	}
	var words [][]wordgraph.Letter
	collectByLength(view, start, minLen, bound, func(c wordgraph.Node, word []wordgraph.Letter) {
		if c == accept {
			words = append(words, append([]wordgraph.Letter(nil), word...))
		}
	})
	return newSliceIterator(words), nil
}

// LeftFactors enumerates, in short-lex order, every word w with
// minLen <= len(w) <= maxLen such that a path from start labelled w exists
// (reaching any node). maxLen < 0 means unbounded, valid only when the
// sub-automaton reachable from start has no cycle.
func LeftFactors(view wordgraph.ReadOnlyView, start wordgraph.Node, minLen, maxLen int) (WordIterator, error) {
	bound, err := resolveBound(view, start, minLen, maxLen)
	if err != nil {
		return nil, fmt.Errorf("LeftFactors: %w", err)
	}
	var words [][]wordgraph.Letter
	collectByLength(view, start, minLen, bound, func(_ wordgraph.Node, word []wordgraph.Letter) {
		words = append(words, append([]wordgraph.Letter(nil), word...))
	})
	return newSliceIterator(words), nil
}

func resolveBound(view wordgraph.ReadOnlyView, start wordgraph.Node, minLen, maxLen int) (int, error) {
	if minLen < 0 || (maxLen >= 0 && minLen > maxLen) {
		return 0, ErrInvalidRange
	}
	if maxLen >= 0 {
		return maxLen, nil
	}
	if HasCycleOnPath(view, start) {
		return 0, ErrInfiniteEnumeration
	}
	return longestAcyclicPath(view, start), nil
}

// longestAcyclicPath returns the length of the longest simple path from
// start, which bounds every word length in an acyclic sub-automaton.
func longestAcyclicPath(view wordgraph.ReadOnlyView, start wordgraph.Node) int {
	memo := make(map[wordgraph.Node]int)
	var visit func(c wordgraph.Node) int
	visit = func(c wordgraph.Node) int {
		if v, ok := memo[c]; ok {
			return v
		}
		best := 0
		view.ForEachEdge(c, func(_ wordgraph.Letter, d wordgraph.Node) {
			if 1+visit(d) > best {
				best = 1 + visit(d)
			}
		})
		memo[c] = best
		return best
	}
	return visit(start)
}

// collectByLength calls report(node, word) for every label-ordered path from
// start of length exactly L, for each L from minLen to maxLen in turn, so
// results arrive grouped by ascending length and lexicographic within a
// length: short-lex order.
func collectByLength(view wordgraph.ReadOnlyView, start wordgraph.Node, minLen, maxLen int, report func(wordgraph.Node, []wordgraph.Letter)) {
	word := make([]wordgraph.Letter, 0, maxLen)
	var walk func(c wordgraph.Node, depth, target int)
	walk = func(c wordgraph.Node, depth, target int) {
		if depth == target {
			report(c, word)
			return
		}
		view.ForEachEdge(c, func(x wordgraph.Letter, d wordgraph.Node) {
			word = append(word, x)
			walk(d, depth+1, target)
			word = word[:len(word)-1]
		})
	}
	for L := minLen; L <= maxLen; L++ {
		walk(start, 0, L)
	}
}
