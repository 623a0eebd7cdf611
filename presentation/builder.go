package presentation

import "fmt"

// Builder is a fluent, validate-at-Build constructor for Presentation,
// mirroring the teacher's builder package: accumulate state across chained
// calls, defer every check to Build().
type Builder struct {
	alphabet          []Letter
	rules             []Rule
	inv               map[Letter]Letter
	containsEmptyWord bool
}

// NewBuilder starts an empty Builder.
func NewBuilder() *Builder {
	return &Builder{inv: make(map[Letter]Letter)}
}

// Alphabet sets the presentation's letters, in the given order. Calling it
// more than once replaces the previous alphabet.
func (b *Builder) Alphabet(letters ...Letter) *Builder {
	b.alphabet = append([]Letter{}, letters...)
	return b
}

// Rule appends the relation u = v.
func (b *Builder) Rule(u, v []Letter) *Builder {
	b.rules = append(b.rules, Rule{LHS: append([]Letter{}, u...), RHS: append([]Letter{}, v...)})
	return b
}

// InverseOf declares a's inverse is b. Build requires the matching
// InverseOf(b,a) to have been declared explicitly (no reverse entry is
// inferred) and otherwise rejects the map as not an involution.
func (b *Builder) InverseOf(a, b2 Letter) *Builder {
	b.inv[a] = b2
	return b
}

// ContainsEmptyWord marks this as a monoid presentation.
func (b *Builder) ContainsEmptyWord() *Builder {
	b.containsEmptyWord = true
	return b
}

// Build validates the accumulated state and produces an immutable
// Presentation, or the first validation error encountered.
func (b *Builder) Build() (*Presentation, error) {
	if len(b.alphabet) == 0 {
		return nil, presentationErrorf("Build", ErrEmptyAlphabet)
	}
	index := make(map[Letter]int, len(b.alphabet))
	for i, a := range b.alphabet {
		if _, dup := index[a]; dup {
			return nil, presentationErrorf("Build", fmt.Errorf("letter %d: %w", a, ErrDuplicateLetter))
		}
		index[a] = i
	}
	for ri, r := range b.rules {
		for _, a := range r.LHS {
			if _, ok := index[a]; !ok {
				return nil, presentationErrorf("Build", fmt.Errorf("rule %d lhs letter %d: %w", ri, a, ErrInvalidLetter))
			}
		}
		for _, a := range r.RHS {
			if _, ok := index[a]; !ok {
				return nil, presentationErrorf("Build", fmt.Errorf("rule %d rhs letter %d: %w", ri, a, ErrInvalidLetter))
			}
		}
	}
	for a, inva := range b.inv {
		if _, ok := index[a]; !ok {
			return nil, presentationErrorf("Build", fmt.Errorf("inverse domain letter %d: %w", a, ErrInvalidLetter))
		}
		if _, ok := index[inva]; !ok {
			return nil, presentationErrorf("Build", fmt.Errorf("inverse range letter %d: %w", inva, ErrInvalidLetter))
		}
		back, ok := b.inv[inva]
		if !ok || back != a {
			return nil, presentationErrorf("Build", fmt.Errorf("letter %d <-> %d: %w", a, inva, ErrInverseNotInvolution))
		}
	}

	alphabet := append([]Letter{}, b.alphabet...)
	rules := make([]Rule, len(b.rules))
	for i, r := range b.rules {
		rules[i] = Rule{LHS: append([]Letter{}, r.LHS...), RHS: append([]Letter{}, r.RHS...)}
	}
	var inv map[Letter]Letter
	if len(b.inv) > 0 {
		inv = make(map[Letter]Letter, len(b.inv))
		for k, v := range b.inv {
			inv[k] = v
		}
	}

	return &Presentation{
		alphabet:          alphabet,
		index:             index,
		rules:             rules,
		inv:               inv,
		containsEmptyWord: b.containsEmptyWord,
	}, nil
}

// New is a convenience constructor equivalent to
// NewBuilder().Alphabet(alphabet...) followed by opts and Build().
func New(alphabet []Letter, opts ...Option) (*Presentation, error) {
	b := NewBuilder().Alphabet(alphabet...)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}

// Option configures a Builder inside New, mirroring the functional-options
// idiom used throughout the teacher's codebase.
type Option func(*Builder)

// WithRule appends a rule via the functional-options form of New.
func WithRule(u, v []Letter) Option {
	return func(b *Builder) { b.Rule(u, v) }
}

// WithInverse declares a's inverse is b via the functional-options form of New.
func WithInverse(a, b2 Letter) Option {
	return func(b *Builder) { b.InverseOf(a, b2) }
}

// WithEmptyWord marks the presentation as a monoid presentation via the
// functional-options form of New.
func WithEmptyWord() Option {
	return func(b *Builder) { b.ContainsEmptyWord() }
}
