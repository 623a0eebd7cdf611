package presentation_test

import (
	"testing"

	"github.com/kestrelgraph/stephen/presentation"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyAlphabetRejected(t *testing.T) {
	_, err := presentation.NewBuilder().Build()
	require.ErrorIs(t, err, presentation.ErrEmptyAlphabet)
}

func TestBuildDuplicateLetterRejected(t *testing.T) {
	_, err := presentation.NewBuilder().Alphabet(0, 1, 0).Build()
	require.ErrorIs(t, err, presentation.ErrDuplicateLetter)
}

func TestBuildRuleLetterOutsideAlphabetRejected(t *testing.T) {
	_, err := presentation.NewBuilder().
		Alphabet(0, 1).
		Rule([]presentation.Letter{2}, []presentation.Letter{0}).
		Build()
	require.ErrorIs(t, err, presentation.ErrInvalidLetter)
}

func TestBuildNonInvolutionInverseRejected(t *testing.T) {
	_, err := presentation.NewBuilder().
		Alphabet(0, 1, 2).
		InverseOf(0, 1).
		InverseOf(1, 2).
		Build()
	require.ErrorIs(t, err, presentation.ErrInverseNotInvolution)
}

func TestBuildValidPresentation(t *testing.T) {
	p, err := presentation.NewBuilder().
		Alphabet(0, 1).
		Rule([]presentation.Letter{0, 0}, []presentation.Letter{0}).
		InverseOf(0, 1).
		InverseOf(1, 0).
		ContainsEmptyWord().
		Build()
	require.NoError(t, err)

	require.Equal(t, []presentation.Letter{0, 1}, p.Alphabet())
	require.Len(t, p.Rules(), 1)
	require.True(t, p.ContainsEmptyWord())
	require.True(t, p.IsInverse())

	inv, ok := p.Inverse(0)
	require.True(t, ok)
	require.Equal(t, presentation.Letter(1), inv)

	idx, ok := p.LetterIndex(1)
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestNewConvenienceConstructor(t *testing.T) {
	p, err := presentation.New([]presentation.Letter{0, 1},
		presentation.WithRule([]presentation.Letter{0, 1}, []presentation.Letter{1, 0}),
		presentation.WithInverse(0, 0),
		presentation.WithEmptyWord(),
	)
	require.NoError(t, err)
	require.True(t, p.ContainsEmptyWord())
	require.True(t, p.IsInverse())
}

func TestBuilderIsImmutableAfterBuild(t *testing.T) {
	b := presentation.NewBuilder().Alphabet(0, 1)
	p1, err := b.Build()
	require.NoError(t, err)

	b.Rule([]presentation.Letter{0}, []presentation.Letter{1})
	p2, err := b.Build()
	require.NoError(t, err)

	require.Len(t, p1.Rules(), 0, "mutating the builder after Build must not retroactively affect p1")
	require.Len(t, p2.Rules(), 1)
}
