package generator

import (
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"
)

// ULID generates lexicographically sortable 26-character ULIDs.
type ULID struct {
	rand io.Reader
	now  func() time.Time
}

// NewULID returns a ULID strategy.
func NewULID(opts ...Option) (*ULID, error) {
	o := newOptions(opts)
	return &ULID{rand: o.rand, now: o.now}, nil
}

// Name returns the strategy name.
func (g *ULID) Name() string { return NameULID }

// Generate returns a new id.
func (g *ULID) Generate() (string, error) {
	id, err := ulid.New(ulid.Timestamp(g.now()), g.rand)
	if err != nil {
		return "", entropyError(err)
	}
	return id.String(), nil
}

// Validate checks that id is a canonical ULID.
func (g *ULID) Validate(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return invalid(NameULID, id, err.Error())
	}
	return nil
}

// ksuidPayloadSize is the number of random bytes in a KSUID.
const ksuidPayloadSize = 16

// KSUID generates 27-character K-sortable ids.
type KSUID struct {
	rand io.Reader
	now  func() time.Time
}

// NewKSUID returns a KSUID strategy.
func NewKSUID(opts ...Option) (*KSUID, error) {
	o := newOptions(opts)
	return &KSUID{rand: o.rand, now: o.now}, nil
}

// Name returns the strategy name.
func (g *KSUID) Name() string { return NameKSUID }

// Generate returns a new id.
func (g *KSUID) Generate() (string, error) {
	payload := make([]byte, ksuidPayloadSize)
	if _, err := io.ReadFull(g.rand, payload); err != nil {
		return "", entropyError(err)
	}
	id, err := ksuid.FromParts(g.now(), payload)
	if err != nil {
		return "", fmt.Errorf("building ksuid: %w", err)
	}
	return id.String(), nil
}

// Validate checks that id parses as a KSUID.
func (g *KSUID) Validate(id string) error {
	if _, err := ksuid.Parse(id); err != nil {
		return invalid(NameKSUID, id, err.Error())
	}
	return nil
}
