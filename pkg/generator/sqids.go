package generator

import (
	"fmt"
	"io"
	"math"

	"github.com/sqids/sqids-go"
)

// DefaultSqidsAlphabet is the sqids reference alphabet.
const DefaultSqidsAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Sqids encodes random numbers as sqids.
type Sqids struct {
	rand io.Reader
	s    *sqids.Sqids
}

// NewSqids returns a sqids strategy configured by WithAlphabet,
// WithMinLength and WithBlocklist.
func NewSqids(opts ...Option) (*Sqids, error) {
	o := newOptions(opts)
	if o.minLength < 0 || o.minLength > math.MaxUint8 {
		return nil, fmt.Errorf("%s: %w: min length %d", NameSqids, ErrInvalidLength, o.minLength)
	}
	s, err := sqids.New(sqids.Options{
		Alphabet:  o.alphabetOr(DefaultSqidsAlphabet),
		MinLength: uint8(o.minLength),
		Blocklist: o.blocklist,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", NameSqids, err)
	}
	return &Sqids{rand: o.rand, s: s}, nil
}

// Name returns the strategy name.
func (g *Sqids) Name() string { return NameSqids }

// Generate returns a new id.
func (g *Sqids) Generate() (string, error) {
	n, err := randomNumber(g.rand)
	if err != nil {
		return "", err
	}
	id, err := g.s.Encode([]uint64{n})
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", NameSqids, err)
	}
	return id, nil
}

// Validate checks that id decodes to a single number and re-encodes to
// itself.
func (g *Sqids) Validate(id string) error {
	nums := g.s.Decode(id)
	if len(nums) != 1 {
		return invalid(NameSqids, id, fmt.Sprintf("decodes to %d numbers, want 1", len(nums)))
	}
	again, err := g.s.Encode(nums)
	if err != nil || again != id {
		return invalid(NameSqids, id, "is not canonical")
	}
	return nil
}
