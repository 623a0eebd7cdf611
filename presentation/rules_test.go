package presentation_test

import (
	"testing"

	"github.com/kestrelgraph/stephen/presentation"
	"github.com/stretchr/testify/require"
)

func TestAddIdentityRulesAppendsBothSides(t *testing.T) {
	p, err := presentation.New([]presentation.Letter{0, 1})
	require.NoError(t, err)

	p2, err := presentation.AddIdentityRules(p, 0)
	require.NoError(t, err)
	require.Len(t, p2.Rules(), 4, "two rules per letter (including identity itself)")

	// original is untouched.
	require.Len(t, p.Rules(), 0)
}

func TestAddIdentityRulesRejectsUnknownIdentity(t *testing.T) {
	p, err := presentation.New([]presentation.Letter{0, 1})
	require.NoError(t, err)

	_, err = presentation.AddIdentityRules(p, 9)
	require.ErrorIs(t, err, presentation.ErrInvalidLetter)
}

func TestAddInverseRulesRequiresEmptyWordAndInverse(t *testing.T) {
	p, err := presentation.New([]presentation.Letter{0, 1})
	require.NoError(t, err)

	_, err = presentation.AddInverseRules(p)
	require.Error(t, err)

	pWithWord, err := presentation.New([]presentation.Letter{0, 1}, presentation.WithEmptyWord())
	require.NoError(t, err)
	_, err = presentation.AddInverseRules(pWithWord)
	require.Error(t, err, "no involution declared")
}

func TestAddInverseRulesAppendsCancellationRule(t *testing.T) {
	p, err := presentation.New([]presentation.Letter{0, 1},
		presentation.WithEmptyWord(),
		presentation.WithInverse(0, 1),
		presentation.WithInverse(1, 0),
	)
	require.NoError(t, err)

	p2, err := presentation.AddInverseRules(p)
	require.NoError(t, err)
	require.Len(t, p2.Rules(), 2, "one cancellation rule per letter with a declared inverse")

	for _, r := range p2.Rules() {
		require.Empty(t, r.RHS)
		require.Len(t, r.LHS, 2)
	}
}
