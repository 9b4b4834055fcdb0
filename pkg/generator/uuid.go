package generator

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// DefaultUUIDVersion is the UUID version used when none is configured.
const DefaultUUIDVersion = 4

// UUID generates RFC 9562 UUIDs of one version.
type UUID struct {
	rand    io.Reader
	version int
}

// NewUUID returns a UUID strategy. WithVersion selects version 1, 4, 6 or
// 7; the default is 4. Versions 4 and 7 draw randomness from WithReader.
func NewUUID(opts ...Option) (*UUID, error) {
	o := newOptions(opts)
	v := o.version
	if v == 0 {
		v = DefaultUUIDVersion
	}
	switch v {
	case 1, 4, 6, 7:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	return &UUID{rand: o.rand, version: v}, nil
}

// Name returns the strategy name.
func (g *UUID) Name() string { return NameUUID }

// Version returns the UUID version produced.
func (g *UUID) Version() int { return g.version }

// Generate returns a new id.
func (g *UUID) Generate() (string, error) {
	var (
		u   uuid.UUID
		err error
	)
	switch g.version {
	case 1:
		u, err = uuid.NewUUID()
	case 6:
		u, err = uuid.NewV6()
	case 7:
		u, err = uuid.NewV7FromReader(g.rand)
	default:
		u, err = uuid.NewRandomFromReader(g.rand)
	}
	if err != nil {
		if g.version == 4 || g.version == 7 {
			return "", entropyError(err)
		}
		return "", fmt.Errorf("generating uuid v%d: %w", g.version, err)
	}
	return u.String(), nil
}

// Validate checks that id is a hyphenated UUID of the configured version.
func (g *UUID) Validate(id string) error {
	if len(id) != 36 {
		return invalid(NameUUID, id, "is not a 36-character uuid")
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return invalid(NameUUID, id, err.Error())
	}
	if int(u.Version()) != g.version {
		return invalid(NameUUID, id, fmt.Sprintf("is version %d, want %d", u.Version(), g.version))
	}
	return nil
}

// ShortUUID encodes random UUIDs in base57.
type ShortUUID struct {
	rand io.Reader
}

// NewShortUUID returns a strategy producing 22-character base57 encodings
// of version 4 UUIDs.
func NewShortUUID(opts ...Option) (*ShortUUID, error) {
	o := newOptions(opts)
	return &ShortUUID{rand: o.rand}, nil
}

// Name returns the strategy name.
func (g *ShortUUID) Name() string { return NameShortUUID }

// Generate returns a new id.
func (g *ShortUUID) Generate() (string, error) {
	u, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return "", entropyError(err)
	}
	return shortuuid.DefaultEncoder.Encode(u), nil
}

// Validate checks that id decodes to a UUID and re-encodes to itself.
func (g *ShortUUID) Validate(id string) error {
	u, err := shortuuid.DefaultEncoder.Decode(id)
	if err != nil {
		return invalid(NameShortUUID, id, err.Error())
	}
	if shortuuid.DefaultEncoder.Encode(u) != id {
		return invalid(NameShortUUID, id, "is not canonical")
	}
	return nil
}
