// Package config loads typedid.yaml, the file that binds entity kinds to
// generator strategies.
//
//	default: uuid
//	generators:
//	  uuid:    { version: 7 }
//	  hashids: { salt: pepper, min_length: 10 }
//	kinds:
//	  user:  { generator: nanoid, prefix: usr }
//	  order: { generator: ulid }
//
// Settings under generators are the defaults for every kind using that
// strategy; a kind's own settings override them field by field.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/eykd/typedid-go/internal/slug"
	"github.com/eykd/typedid-go/pkg/generator"
	"github.com/eykd/typedid-go/pkg/typedid"
)

// FileName is the conventional config file name.
const FileName = "typedid.yaml"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the decoded config file.
type Config struct {
	// Default names the fallback strategy for unbound kinds.
	Default string `yaml:"default" json:"default"`
	// Generators holds per-strategy defaults keyed by strategy name.
	Generators map[string]generator.Spec `yaml:"generators,omitempty" json:"generators,omitempty"`
	// Kinds binds kind names to strategies.
	Kinds map[string]generator.Spec `yaml:"kinds,omitempty" json:"kinds,omitempty"`
}

// Default returns the built-in configuration: UUID v4 for every kind.
func Default() *Config {
	return &Config{Default: generator.NameUUID}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, normalizes and validates a config document. Unknown keys
// are rejected. An empty document yields Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// normalize rewrites kind names to snake case.
func (c *Config) normalize() error {
	if len(c.Kinds) == 0 {
		return nil
	}
	kinds := make(map[string]generator.Spec, len(c.Kinds))
	for name, spec := range c.Kinds {
		key := slug.Snake(name)
		if key == "" {
			return fmt.Errorf("%w: kind %q has no usable name", ErrInvalidConfig, name)
		}
		if _, dup := kinds[key]; dup {
			return fmt.Errorf("%w: kinds %q collide as %q", ErrInvalidConfig, name, key)
		}
		kinds[key] = spec
	}
	c.Kinds = kinds
	return nil
}

// KindNames returns the configured kind names, sorted.
func (c *Config) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for k := range c.Kinds {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Spec returns the effective spec for kind: the kind's own settings merged
// over the defaults of its strategy. Unknown kinds get the default
// strategy.
func (c *Config) Spec(kind string) generator.Spec {
	own, ok := c.Kinds[kind]
	if !ok {
		own = generator.Spec{Name: c.Default}
	}
	if own.Name == "" {
		own.Name = c.Default
	}
	return merge(c.Generators[own.Name], own)
}

// Override returns the effective spec for kind with the non-zero fields of
// over applied on top. The strategy stays the configured one; a prefix in
// over replaces the configured prefix.
func (c *Config) Override(kind string, over generator.Spec) generator.Spec {
	base := c.Spec(kind)
	over.Name = base.Name
	return merge(base, over)
}

// FallbackSpec returns the effective spec of the default strategy.
func (c *Config) FallbackSpec() generator.Spec {
	return merge(c.Generators[c.Default], generator.Spec{Name: c.Default})
}

// Registry builds a typed id registry from c. Extra options, such as
// generator.WithReader, apply to every strategy.
func (c *Config) Registry(extra ...generator.Option) (*typedid.Registry, error) {
	fallback, err := generator.Build(c.FallbackSpec(), extra...)
	if err != nil {
		return nil, fmt.Errorf("default generator: %w", err)
	}
	r := typedid.NewRegistry(fallback)
	for _, kind := range c.KindNames() {
		g, err := generator.Build(c.Spec(kind), extra...)
		if err != nil {
			return nil, fmt.Errorf("kind %q: %w", kind, err)
		}
		r.Bind(kind, g)
	}
	return r, nil
}

// merge overlays the non-zero fields of over onto base.
func merge(base, over generator.Spec) generator.Spec {
	out := base
	out.Name = over.Name
	if over.Alphabet != "" {
		out.Alphabet = over.Alphabet
	}
	if over.Length != nil {
		out.Length = over.Length
	}
	if over.Version != 0 {
		out.Version = over.Version
	}
	if over.Salt != "" {
		out.Salt = over.Salt
	}
	if over.MinLength != 0 {
		out.MinLength = over.MinLength
	}
	if over.Blocklist != nil {
		out.Blocklist = over.Blocklist
	}
	if over.Prefix != "" {
		out.Prefix = over.Prefix
	}
	if over.Separator != "" {
		out.Separator = over.Separator
	}
	return out
}
