package paths

import (
	"fmt"
	"math"

	"github.com/kestrelgraph/stephen/wordgraph"
)

// Infinite is returned by NumberOfWordsAccepted/NumberOfLeftFactors in place
// of a count when the relevant sub-automaton is cyclic.
const Infinite = math.MaxInt64

// NumberOfWordsAccepted returns the number of distinct words accepted by
// view from start to accept, or Infinite if the sub-automaton reachable
// from start contains a cycle (the original's number_of_words_accepted,
// which special-cases the infinite count rather than erroring).
func NumberOfWordsAccepted(view wordgraph.ReadOnlyView, start, accept wordgraph.Node) (int, error) {
	if HasCycleOnPath(view, start) {
		return Infinite, nil
	}
	bound := longestAcyclicPath(view, start)
	it, err := WordsAccepted(view, start, accept, 0, bound)
	if err != nil {
		return 0, fmt.Errorf("NumberOfWordsAccepted: %w", err)
	}
	return countAll(it), nil
}

// NumberOfLeftFactors returns the number of distinct left factors of the
// language accepted from start (paths of any length from start), or
// Infinite if the reachable sub-automaton contains a cycle.
func NumberOfLeftFactors(view wordgraph.ReadOnlyView, start wordgraph.Node) (int, error) {
	if HasCycleOnPath(view, start) {
		return Infinite, nil
	}
	bound := longestAcyclicPath(view, start)
	it, err := LeftFactors(view, start, 0, bound)
	if err != nil {
		return 0, fmt.Errorf("NumberOfLeftFactors: %w", err)
	}
	return countAll(it), nil
}

func countAll(it WordIterator) int {
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}
