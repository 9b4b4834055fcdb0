// Package generator provides the interchangeable id generation strategies
// a typed identifier can be bound to.
package generator

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/eykd/typedid-go/pkg/alphabet"
)

// Generator produces new identifiers and recognizes the ones it could have
// produced.
type Generator interface {
	// Generate returns a new identifier.
	Generate() (string, error)
	// Validate returns nil when id has this generator's format, or an error
	// wrapping ErrInvalidFormat.
	Validate(id string) error
}

// Strategy names.
const (
	NameNanoID       = "nanoid"
	NameBase58       = "base58"
	NameRandomString = "random_string"
	NameRandomBytes  = "random_bytes"
	NameUUID         = "uuid"
	NameULID         = "ulid"
	NameKSUID        = "ksuid"
	NameShortUUID    = "short_uuid"
	NameHashids      = "hashids"
	NameSqids        = "sqids"
	NamePrefixed     = "prefixed"
)

var (
	// ErrInvalidFormat is wrapped by every Validate failure.
	ErrInvalidFormat = errors.New("invalid id format")
	// ErrUnknownGenerator is returned by Build for an unregistered name.
	ErrUnknownGenerator = errors.New("unknown generator")
	// ErrUnsupportedVersion is returned for a UUID version other than 1, 4, 6 or 7.
	ErrUnsupportedVersion = errors.New("unsupported uuid version")
	// ErrInvalidPrefix is returned for an empty prefix.
	ErrInvalidPrefix = errors.New("invalid prefix")
	// ErrInvalidLength is returned for a length the strategy cannot honour.
	ErrInvalidLength = errors.New("invalid length")
)

// Names returns every strategy name Build accepts, sorted.
func Names() []string {
	names := []string{
		NameNanoID, NameBase58, NameRandomString, NameRandomBytes, NameUUID,
		NameULID, NameKSUID, NameShortUUID, NameHashids, NameSqids,
	}
	sort.Strings(names)
	return names
}

// options holds every strategy's tunables; each constructor reads the ones
// it understands.
type options struct {
	rand      io.Reader
	now       func() time.Time
	alphabet  string
	length    int
	hasLength bool
	version   int
	salt      string
	minLength int
	blocklist []string
	separator string
}

// Option configures a strategy.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		rand:      rand.Reader,
		now:       time.Now,
		separator: "_",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithReader sets the random source. The default is crypto/rand.Reader.
func WithReader(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

// WithClock sets the time source of time-ordered strategies (ulid, ksuid).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAlphabet overrides the strategy's default alphabet.
func WithAlphabet(symbols string) Option {
	return func(o *options) { o.alphabet = symbols }
}

// WithLength overrides the strategy's default length: symbols for the
// alphabet presets, bytes for random_bytes.
func WithLength(n int) Option {
	return func(o *options) {
		o.length = n
		o.hasLength = true
	}
}

// WithVersion selects the UUID version.
func WithVersion(v int) Option {
	return func(o *options) { o.version = v }
}

// WithSalt sets the hashids salt.
func WithSalt(salt string) Option {
	return func(o *options) { o.salt = salt }
}

// WithMinLength sets the minimum length of hashids and sqids output.
func WithMinLength(n int) Option {
	return func(o *options) { o.minLength = n }
}

// WithBlocklist replaces the sqids blocklist.
func WithBlocklist(words []string) Option {
	return func(o *options) { o.blocklist = words }
}

// WithSeparator sets the separator between a prefix and the inner id.
func WithSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

func (o *options) lengthOr(def int) int {
	if o.hasLength {
		return o.length
	}
	return def
}

func (o *options) alphabetOr(def string) string {
	if o.alphabet != "" {
		return o.alphabet
	}
	return def
}

// maxSafeInt keeps encoded numbers within 53 bits so they round-trip
// through JSON numbers and other languages' hashids/sqids decoders.
const maxSafeInt = 1<<53 - 1

// randomNumber reads a uniformly random integer in [0, maxSafeInt].
func randomNumber(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, entropyError(err)
	}
	return binary.BigEndian.Uint64(buf[:]) & maxSafeInt, nil
}

func entropyError(err error) error {
	return fmt.Errorf("%w: %w", alphabet.ErrEntropyUnavailable, err)
}

func invalid(name, id, reason string) error {
	return fmt.Errorf("%w: %s id %q: %s", ErrInvalidFormat, name, id, reason)
}
