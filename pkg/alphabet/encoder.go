package alphabet

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrEntropyUnavailable is returned when the random source cannot supply
// the requested bytes. It is never retried.
var ErrEntropyUnavailable = errors.New("entropy unavailable")

// stepFactor over-requests random bytes so that, even at a ~50% rejection
// rate, one read usually yields enough accepted bytes.
const stepFactor = 1.6

// Generate returns length symbols drawn uniformly from symbols using random
// bytes read from r.
//
// Each byte is masked to the smallest power-of-two range covering the
// alphabet and rejected when it falls outside it, so no symbol is favoured
// the way byte % len(symbols) would favour low indices. A length <= 0
// yields "". An alphabet of zero or one symbol yields that alphabet
// repeated length times without touching r. Repeated symbols are rejected
// with ErrDuplicateSymbol.
func Generate(r io.Reader, symbols string, length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	runes := []rune(symbols)
	if len(runes) <= 1 {
		return strings.Repeat(symbols, length), nil
	}
	if len(runes) > MaxSymbols {
		return "", fmt.Errorf("%w: got %d", ErrAlphabetTooLarge, len(runes))
	}
	seen := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		if _, dup := seen[r]; dup {
			return "", fmt.Errorf("%w: %q", ErrDuplicateSymbol, r)
		}
		seen[r] = struct{}{}
	}
	m := mask(len(runes))
	return encode(r, runes, length, m, step(m, length, len(runes)))
}

// step returns how many random bytes to request per read.
func step(m, length, n int) int {
	s := int(math.Ceil(stepFactor * float64(m) * float64(length) / float64(n)))
	if s < 1 {
		return 1
	}
	return s
}

func encode(r io.Reader, runes []rune, length, m, stepSize int) (string, error) {
	n := len(runes)
	buf := make([]byte, stepSize)

	var b strings.Builder
	b.Grow(length)
	emitted := 0
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("%w: reading %d random bytes: %w", ErrEntropyUnavailable, stepSize, err)
		}
		for _, c := range buf {
			idx := int(c) & m
			if idx >= n {
				continue
			}
			b.WriteRune(runes[idx])
			emitted++
			if emitted == length {
				return b.String(), nil
			}
		}
	}
}

// Encoder generates fixed-length strings over one Alphabet. It holds no
// mutable state and is safe for concurrent use when its reader is.
type Encoder struct {
	alphabet Alphabet
	length   int
	rand     io.Reader
	mask     int
	step     int
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithReader sets the random source. The default is crypto/rand.Reader.
func WithReader(r io.Reader) EncoderOption {
	return func(e *Encoder) {
		if r != nil {
			e.rand = r
		}
	}
}

// NewEncoder returns an Encoder producing length symbols from a.
func NewEncoder(a Alphabet, length int, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		alphabet: a,
		length:   length,
		rand:     rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	if a.Len() > 1 {
		e.mask = a.Mask()
		e.step = step(e.mask, length, a.Len())
	}
	return e
}

// Alphabet returns the encoder's alphabet.
func (e *Encoder) Alphabet() Alphabet { return e.alphabet }

// Length returns the number of symbols each call produces.
func (e *Encoder) Length() int { return e.length }

// Generate returns a new random string of Length symbols.
func (e *Encoder) Generate() (string, error) {
	if e.length <= 0 {
		return "", nil
	}
	if e.alphabet.Len() <= 1 {
		return strings.Repeat(e.alphabet.String(), e.length), nil
	}
	return encode(e.rand, e.alphabet.symbols, e.length, e.mask, e.step)
}
