package generator

import (
	"fmt"
	"io"

	"github.com/speps/go-hashids/v2"
)

// Hashids encodes random numbers with a salted hashids alphabet.
type Hashids struct {
	rand io.Reader
	h    *hashids.HashID
}

// NewHashids returns a hashids strategy configured by WithSalt,
// WithMinLength and WithAlphabet.
func NewHashids(opts ...Option) (*Hashids, error) {
	o := newOptions(opts)
	if o.minLength < 0 {
		return nil, fmt.Errorf("%s: %w: min length %d", NameHashids, ErrInvalidLength, o.minLength)
	}
	data := hashids.NewData()
	data.Salt = o.salt
	data.MinLength = o.minLength
	data.Alphabet = o.alphabetOr(hashids.DefaultAlphabet)

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", NameHashids, err)
	}
	return &Hashids{rand: o.rand, h: h}, nil
}

// Name returns the strategy name.
func (g *Hashids) Name() string { return NameHashids }

// Generate returns a new id.
func (g *Hashids) Generate() (string, error) {
	n, err := randomNumber(g.rand)
	if err != nil {
		return "", err
	}
	id, err := g.h.EncodeInt64([]int64{int64(n)})
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", NameHashids, err)
	}
	return id, nil
}

// Validate checks that id decodes to a single number and re-encodes to
// itself under this salt and alphabet.
func (g *Hashids) Validate(id string) error {
	nums, err := g.h.DecodeInt64WithError(id)
	if err != nil {
		return invalid(NameHashids, id, err.Error())
	}
	if len(nums) != 1 {
		return invalid(NameHashids, id, fmt.Sprintf("encodes %d numbers, want 1", len(nums)))
	}
	again, err := g.h.EncodeInt64(nums)
	if err != nil || again != id {
		return invalid(NameHashids, id, "is not canonical")
	}
	return nil
}
