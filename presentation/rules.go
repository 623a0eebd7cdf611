package presentation

import "fmt"

// AddIdentityRules returns a copy of p with the rules (identity·a, a) and
// (a·identity, a) appended for every letter a (including identity itself),
// synthesising a left/right unit. identity must already be a letter of p.
//
// This is additive sugar over the immutable construction step, not a
// rewriting engine: it never inspects or alters p's existing rules, and
// must run before the result is handed to a stephen.Driver.
//
// Grounded on original_source's present.hpp add_identity_rules.
func AddIdentityRules(p *Presentation, identity Letter) (*Presentation, error) {
	if _, ok := p.LetterIndex(identity); !ok {
		return nil, fmt.Errorf("AddIdentityRules: %w", ErrInvalidLetter)
	}
	b := NewBuilder().Alphabet(p.alphabet...)
	if p.containsEmptyWord {
		b.ContainsEmptyWord()
	}
	for k, v := range p.inv {
		b.InverseOf(k, v)
	}
	for _, r := range p.rules {
		b.Rule(r.LHS, r.RHS)
	}
	for _, a := range p.alphabet {
		b.Rule([]Letter{identity, a}, []Letter{a})
		b.Rule([]Letter{a, identity}, []Letter{a})
	}
	return b.Build()
}

// AddInverseRules returns a copy of p with the rule (a·a⁻¹, ε) appended for
// every letter a with a declared inverse, where ε is the empty word.
// Requires p.ContainsEmptyWord (the empty word must be a valid right-hand
// side) and p.IsInverse (an involution must already be declared).
//
// Grounded on original_source's present.hpp add_inverse_rules.
func AddInverseRules(p *Presentation) (*Presentation, error) {
	if !p.containsEmptyWord {
		return nil, fmt.Errorf("AddInverseRules: presentation does not contain the empty word")
	}
	if !p.IsInverse() {
		return nil, fmt.Errorf("AddInverseRules: presentation declares no involution")
	}
	b := NewBuilder().Alphabet(p.alphabet...).ContainsEmptyWord()
	for k, v := range p.inv {
		b.InverseOf(k, v)
	}
	for _, r := range p.rules {
		b.Rule(r.LHS, r.RHS)
	}
	for _, a := range p.alphabet {
		if inv, ok := p.inv[a]; ok {
			b.Rule([]Letter{a, inv}, []Letter{})
		}
	}
	return b.Build()
}
