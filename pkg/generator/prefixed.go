package generator

import (
	"fmt"
	"strings"
)

// Prefixed decorates another generator's ids with a fixed prefix, the way
// Stripe writes cus_ and ch_ ids.
type Prefixed struct {
	prefix string
	sep    string
	inner  Generator
}

// NewPrefixed returns a generator producing prefix + separator + inner id.
// The separator defaults to "_" and may be changed with WithSeparator.
func NewPrefixed(prefix string, inner Generator, opts ...Option) (*Prefixed, error) {
	o := newOptions(opts)
	if prefix == "" {
		return nil, fmt.Errorf("%w: prefix is empty", ErrInvalidPrefix)
	}
	if inner == nil {
		return nil, fmt.Errorf("%w: %q has no inner generator", ErrInvalidPrefix, prefix)
	}
	return &Prefixed{prefix: prefix, sep: o.separator, inner: inner}, nil
}

// Name returns the strategy name.
func (g *Prefixed) Name() string { return NamePrefixed }

// Prefix returns the prefix including the separator.
func (g *Prefixed) Prefix() string { return g.prefix + g.sep }

// Inner returns the wrapped generator.
func (g *Prefixed) Inner() Generator { return g.inner }

// Generate returns a new id.
func (g *Prefixed) Generate() (string, error) {
	id, err := g.inner.Generate()
	if err != nil {
		return "", err
	}
	return g.Prefix() + id, nil
}

// Validate checks the prefix and validates the rest with the inner
// generator.
func (g *Prefixed) Validate(id string) error {
	rest, ok := strings.CutPrefix(id, g.Prefix())
	if !ok {
		return invalid(NamePrefixed, id, fmt.Sprintf("does not start with %q", g.Prefix()))
	}
	return g.inner.Validate(rest)
}
