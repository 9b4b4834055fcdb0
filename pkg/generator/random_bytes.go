package generator

import (
	"encoding/hex"
	"fmt"
	"io"
)

// DefaultRandomBytesLength is the number of random bytes behind each
// random_bytes id.
const DefaultRandomBytesLength = 16

// RandomBytes returns random bytes as lowercase hex.
type RandomBytes struct {
	rand io.Reader
	n    int
}

// NewRandomBytes returns a strategy hex-encoding 16 random bytes unless
// WithLength says otherwise.
func NewRandomBytes(opts ...Option) (*RandomBytes, error) {
	o := newOptions(opts)
	n := o.lengthOr(DefaultRandomBytesLength)
	if n < 1 {
		return nil, fmt.Errorf("%s: %w: %d bytes", NameRandomBytes, ErrInvalidLength, n)
	}
	return &RandomBytes{rand: o.rand, n: n}, nil
}

// Name returns the strategy name.
func (g *RandomBytes) Name() string { return NameRandomBytes }

// Generate returns a new id.
func (g *RandomBytes) Generate() (string, error) {
	buf := make([]byte, g.n)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", entropyError(err)
	}
	return hex.EncodeToString(buf), nil
}

// Validate checks that id is lowercase hex of the configured byte length.
func (g *RandomBytes) Validate(id string) error {
	if len(id) != 2*g.n {
		return invalid(NameRandomBytes, id, fmt.Sprintf("has %d characters, want %d", len(id), 2*g.n))
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return invalid(NameRandomBytes, id, "is not lowercase hex")
		}
	}
	return nil
}
