package generator

import (
	"fmt"
	"unicode/utf8"

	"github.com/eykd/typedid-go/pkg/alphabet"
)

// Default lengths of the alphabet presets.
const (
	DefaultNanoIDLength       = 21
	DefaultBase58Length       = 21
	DefaultRandomStringLength = 16
)

// Encoded is a strategy backed by the unbiased alphabet encoder.
type Encoded struct {
	name string
	enc  *alphabet.Encoder
}

// NewNanoID returns the NanoID preset: 21 symbols from alphabet.NanoID
// unless WithAlphabet or WithLength say otherwise.
func NewNanoID(opts ...Option) (*Encoded, error) {
	return newEncoded(NameNanoID, alphabet.NanoID, DefaultNanoIDLength, opts)
}

// NewBase58 returns the Base58 preset: 21 symbols from alphabet.Base58
// unless WithAlphabet or WithLength say otherwise.
func NewBase58(opts ...Option) (*Encoded, error) {
	return newEncoded(NameBase58, alphabet.Base58, DefaultBase58Length, opts)
}

// NewRandomString returns 16 alphanumeric symbols unless WithAlphabet or
// WithLength say otherwise.
func NewRandomString(opts ...Option) (*Encoded, error) {
	return newEncoded(NameRandomString, alphabet.Alphanumeric, DefaultRandomStringLength, opts)
}

func newEncoded(name, defAlphabet string, defLength int, opts []Option) (*Encoded, error) {
	o := newOptions(opts)
	a, err := alphabet.New(o.alphabetOr(defAlphabet))
	if err != nil {
		return nil, fmt.Errorf("%s alphabet: %w", name, err)
	}
	return &Encoded{
		name: name,
		enc:  alphabet.NewEncoder(a, o.lengthOr(defLength), alphabet.WithReader(o.rand)),
	}, nil
}

// Name returns the strategy name.
func (g *Encoded) Name() string { return g.name }

// Alphabet returns the symbols ids are drawn from.
func (g *Encoded) Alphabet() string { return g.enc.Alphabet().String() }

// Length returns the number of symbols per id.
func (g *Encoded) Length() int { return g.enc.Length() }

// Generate returns a new id.
func (g *Encoded) Generate() (string, error) {
	return g.enc.Generate()
}

// Validate checks the id's length and that every symbol is in the alphabet.
func (g *Encoded) Validate(id string) error {
	want := max(g.enc.Length(), 0)
	if n := utf8.RuneCountInString(id); n != want {
		return invalid(g.name, id, fmt.Sprintf("has %d symbols, want %d", n, want))
	}
	if !g.enc.Alphabet().ContainsAll(id) {
		return invalid(g.name, id, "contains symbols outside the alphabet")
	}
	return nil
}
