package paths_test

import (
	"testing"

	"github.com/kestrelgraph/stephen/paths"
	"github.com/kestrelgraph/stephen/wordgraph"
	"github.com/stretchr/testify/require"
)

// chain builds a 3-node deterministic automaton: 0-(0)->1-(1)->2, plus a
// second branch 0-(1)->2 directly, over a 2-letter alphabet. Used by
// WordsAccepted/LeftFactors tests below.
func chain(t *testing.T) *wordgraph.Sourced {
	t.Helper()
	s, err := wordgraph.NewSourced(3, 2)
	require.NoError(t, err)
	require.NoError(t, s.AddEdge(0, 0, 1))
	require.NoError(t, s.AddEdge(1, 1, 2))
	require.NoError(t, s.AddEdge(0, 1, 2))
	return s
}

func drain(t *testing.T, it paths.WordIterator) [][]wordgraph.Letter {
	t.Helper()
	var out [][]wordgraph.Letter
	for {
		w, ok := it.Next()
		if !ok {
			break
		}
		cp := append([]wordgraph.Letter(nil), w...)
		out = append(out, cp)
	}
	return out
}

func TestWordsAcceptedShortLexOrder(t *testing.T) {
	g := chain(t)

	it, err := paths.WordsAccepted(g, 0, 2, 0, 2)
	require.NoError(t, err)

	words := drain(t, it)
	require.Equal(t, [][]wordgraph.Letter{
		{1},    // length 1, label 1: 0-(1)->2
		{0, 1}, // length 2, label 0 then 1: 0-(0)->1-(1)->2
	}, words)
}

func TestWordsAcceptedRestartable(t *testing.T) {
	g := chain(t)
	it, err := paths.WordsAccepted(g, 0, 2, 0, 2)
	require.NoError(t, err)

	first := drain(t, it)
	it.Reset()
	second := drain(t, it)
	require.Equal(t, first, second)
}

func TestLeftFactorsIncludesEveryPrefix(t *testing.T) {
	g := chain(t)
	it, err := paths.LeftFactors(g, 0, 0, 2)
	require.NoError(t, err)

	words := drain(t, it)
	require.Equal(t, [][]wordgraph.Letter{
		{},
		{0},
		{1},
		{0, 1},
	}, words)
}

func TestInvalidRangeRejected(t *testing.T) {
	g := chain(t)
	_, err := paths.WordsAccepted(g, 0, 2, 2, 1)
	require.ErrorIs(t, err, paths.ErrInvalidRange)

	_, err = paths.LeftFactors(g, 0, -1, 2)
	require.ErrorIs(t, err, paths.ErrInvalidRange)
}

func TestHasCycleOnPath(t *testing.T) {
	acyclic := chain(t)
	require.False(t, paths.HasCycleOnPath(acyclic, 0))

	cyclic, err := wordgraph.NewSourced(2, 1)
	require.NoError(t, err)
	require.NoError(t, cyclic.AddEdge(0, 0, 1))
	require.NoError(t, cyclic.AddEdge(1, 0, 0))
	require.True(t, paths.HasCycleOnPath(cyclic, 0))
}

func TestUnboundedEnumerationRequiresAcyclic(t *testing.T) {
	cyclic, err := wordgraph.NewSourced(2, 1)
	require.NoError(t, err)
	require.NoError(t, cyclic.AddEdge(0, 0, 1))
	require.NoError(t, cyclic.AddEdge(1, 0, 0))

	_, err = paths.LeftFactors(cyclic, 0, 0, -1)
	require.ErrorIs(t, err, paths.ErrInfiniteEnumeration)
}

func TestNumberOfWordsAcceptedAndLeftFactors(t *testing.T) {
	g := chain(t)

	n, err := paths.NumberOfWordsAccepted(g, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = paths.NumberOfLeftFactors(g, 0)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestNumberOfWordsAcceptedInfiniteForCyclicSubAutomaton(t *testing.T) {
	cyclic, err := wordgraph.NewSourced(2, 1)
	require.NoError(t, err)
	require.NoError(t, cyclic.AddEdge(0, 0, 1))
	require.NoError(t, cyclic.AddEdge(1, 0, 0))

	n, err := paths.NumberOfLeftFactors(cyclic, 0)
	require.NoError(t, err)
	require.Equal(t, paths.Infinite, n)
}
