// Package alphabet encodes cryptographically secure random bytes into
// fixed-length strings drawn uniformly from an alphabet.
package alphabet

import (
	"errors"
	"fmt"
	"math/bits"

	"golang.org/x/text/unicode/norm"
)

// Preset alphabets.
const (
	// NanoID is the 64-symbol URL-safe alphabet used by NanoID.
	NanoID = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	// Base58 is the Bitcoin alphabet: alphanumerics without 0, O, I and l.
	Base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	// Alphanumeric holds the 62 ASCII letters and digits.
	Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// Numeric holds the ten decimal digits.
	Numeric = "0123456789"
)

// MaxSymbols is the largest alphabet a single random byte can index.
const MaxSymbols = 256

var (
	// ErrEmptyAlphabet is returned when an alphabet has no symbols.
	ErrEmptyAlphabet = errors.New("alphabet is empty")
	// ErrDuplicateSymbol is returned when a symbol appears more than once.
	ErrDuplicateSymbol = errors.New("alphabet contains duplicate symbol")
	// ErrAlphabetTooLarge is returned when an alphabet exceeds MaxSymbols.
	ErrAlphabetTooLarge = fmt.Errorf("alphabet exceeds %d symbols", MaxSymbols)
)

// Alphabet is an immutable ordered set of unique symbols.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
	text    string
}

// New validates symbols and returns the Alphabet they form. The input is
// NFC-normalized first, so composed and decomposed spellings of a symbol
// are the same symbol.
func New(symbols string) (Alphabet, error) {
	text := norm.NFC.String(symbols)
	runes := []rune(text)
	if len(runes) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}
	if len(runes) > MaxSymbols {
		return Alphabet{}, fmt.Errorf("%w: got %d", ErrAlphabetTooLarge, len(runes))
	}

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, dup := index[r]; dup {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateSymbol, r)
		}
		index[r] = i
	}
	return Alphabet{symbols: runes, index: index, text: text}, nil
}

// MustNew is like New but panics on an invalid alphabet. Use it for
// package-level presets.
func MustNew(symbols string) Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols.
func (a Alphabet) Len() int { return len(a.symbols) }

// String returns the symbols in order.
func (a Alphabet) String() string { return a.text }

// Contains reports whether r is one of the symbols.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// ContainsAll reports whether every rune of s is one of the symbols.
func (a Alphabet) ContainsAll(s string) bool {
	for _, r := range s {
		if !a.Contains(r) {
			return false
		}
	}
	return true
}

// Mask returns the smallest 2^k-1 that covers every symbol index.
func (a Alphabet) Mask() int { return mask(len(a.symbols)) }

// mask computes (2 << floor(log2(n-1))) - 1 for n >= 2.
func mask(n int) int {
	return 1<<bits.Len(uint(n-1)) - 1
}
