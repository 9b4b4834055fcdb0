package generator

import "fmt"

// Spec describes a strategy by name and plain parameters, the shape it takes
// in configuration files and on the command line. Zero fields mean the
// strategy's default.
type Spec struct {
	Name      string   `yaml:"generator" json:"generator"`
	Alphabet  string   `yaml:"alphabet,omitempty" json:"alphabet,omitempty"`
	Length    *int     `yaml:"length,omitempty" json:"length,omitempty"`
	Version   int      `yaml:"version,omitempty" json:"version,omitempty"`
	Salt      string   `yaml:"salt,omitempty" json:"salt,omitempty"`
	MinLength int      `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	Blocklist []string `yaml:"blocklist,omitempty" json:"blocklist,omitempty"`
	Prefix    string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Separator string   `yaml:"separator,omitempty" json:"separator,omitempty"`
}

// Options converts the spec's parameters to strategy options.
func (s Spec) Options() []Option {
	var opts []Option
	if s.Alphabet != "" {
		opts = append(opts, WithAlphabet(s.Alphabet))
	}
	if s.Length != nil {
		opts = append(opts, WithLength(*s.Length))
	}
	if s.Version != 0 {
		opts = append(opts, WithVersion(s.Version))
	}
	if s.Salt != "" {
		opts = append(opts, WithSalt(s.Salt))
	}
	if s.MinLength != 0 {
		opts = append(opts, WithMinLength(s.MinLength))
	}
	if s.Blocklist != nil {
		opts = append(opts, WithBlocklist(s.Blocklist))
	}
	if s.Separator != "" {
		opts = append(opts, WithSeparator(s.Separator))
	}
	return opts
}

// Build constructs the strategy named by spec. A non-empty Prefix wraps it
// in a Prefixed generator. Extra options, such as WithReader, are applied
// after the spec's own.
func Build(spec Spec, extra ...Option) (Generator, error) {
	opts := append(spec.Options(), extra...)

	g, err := build(spec.Name, opts)
	if err != nil {
		return nil, err
	}
	if spec.Prefix == "" {
		return g, nil
	}
	p, err := NewPrefixed(spec.Prefix, g, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func build(name string, opts []Option) (Generator, error) {
	var (
		g   Generator
		err error
	)
	switch name {
	case NameNanoID:
		g, err = NewNanoID(opts...)
	case NameBase58:
		g, err = NewBase58(opts...)
	case NameRandomString:
		g, err = NewRandomString(opts...)
	case NameRandomBytes:
		g, err = NewRandomBytes(opts...)
	case NameUUID:
		g, err = NewUUID(opts...)
	case NameULID:
		g, err = NewULID(opts...)
	case NameKSUID:
		g, err = NewKSUID(opts...)
	case NameShortUUID:
		g, err = NewShortUUID(opts...)
	case NameHashids:
		g, err = NewHashids(opts...)
	case NameSqids:
		g, err = NewSqids(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	// A failed constructor's nil pointer must not leak into the interface.
	if err != nil {
		return nil, err
	}
	return g, nil
}
