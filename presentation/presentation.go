// Package presentation is a shallow, immutable-after-Build container for a
// semigroup or monoid presentation ⟨A | R⟩: an alphabet of letters and a set
// of rules (pairs of words over that alphabet), optionally a partial
// involution (inverse map) for presentations of inverse semigroups/monoids,
// and a flag recording whether the alphabet treats the empty word as a
// unit (monoid presentations).
//
// Presentation is the input accepted by package stephen's Driver. It is not
// a rewriting or confluence engine — rules are stored verbatim, in the
// order supplied, and are never normalised, reordered, or reduced.
//
// Grounded on original_source's present.hpp (the distillation source for
// this shallow-wrapper design) and on the teacher's builder package's
// "validate once, immutable afterwards" shape.
package presentation

import (
	"errors"
	"fmt"
)

// Letter is a small non-negative label, matching wordgraph.Letter's type.
type Letter = uint32

// Rule is one relation u = v of the presentation.
type Rule struct {
	LHS, RHS []Letter
}

// Sentinel errors for presentation construction.
var (
	// ErrEmptyAlphabet indicates a presentation was built with no letters.
	ErrEmptyAlphabet = errors.New("presentation: alphabet is empty")

	// ErrDuplicateLetter indicates the same letter appeared twice in the alphabet.
	ErrDuplicateLetter = errors.New("presentation: duplicate letter in alphabet")

	// ErrInvalidLetter indicates a rule or inverse entry referenced a letter
	// outside the alphabet.
	ErrInvalidLetter = errors.New("presentation: letter not in alphabet")

	// ErrInverseNotInvolution indicates InverseOf(a,b) was supplied without
	// the matching InverseOf(b,a), or a letter was given two different inverses.
	ErrInverseNotInvolution = errors.New("presentation: inverse map is not an involution")
)

// Presentation is an ordered alphabet, an ordered list of rules, an optional
// partial involution over the alphabet, and a contains-empty-word flag.
type Presentation struct {
	alphabet          []Letter
	index             map[Letter]int
	rules             []Rule
	inv               map[Letter]Letter
	containsEmptyWord bool
}

// LetterIndex returns the alphabet position of a, or (0, false) if a is not
// a letter of this presentation.
func (p *Presentation) LetterIndex(a Letter) (int, bool) {
	i, ok := p.index[a]
	return i, ok
}

// Alphabet returns the presentation's letters in declaration order.
func (p *Presentation) Alphabet() []Letter {
	out := make([]Letter, len(p.alphabet))
	copy(out, p.alphabet)
	return out
}

// Rules returns the presentation's rules in declaration order.
func (p *Presentation) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// ContainsEmptyWord reports whether this is a monoid presentation (the
// empty word is a unit, i.e. a valid word of length 0 accepted at the
// start node of any Stephen word graph built from it).
func (p *Presentation) ContainsEmptyWord() bool { return p.containsEmptyWord }

// Inverse returns (a⁻¹, true) if a has a declared inverse, else (0, false).
// Always (0, false) for presentations with no involution.
func (p *Presentation) Inverse(a Letter) (Letter, bool) {
	b, ok := p.inv[a]
	return b, ok
}

// IsInverse reports whether this presentation declares any involution at all.
func (p *Presentation) IsInverse() bool { return len(p.inv) > 0 }

func presentationErrorf(method string, err error) error {
	return fmt.Errorf("Presentation.%s: %w", method, err)
}
