// Package typedid provides strongly typed entity identifiers.
//
// An identifier's type carries its entity kind, so a UserID and an OrderID
// never mix even when both wrap the same string:
//
//	type userKind struct{}
//
//	func (userKind) KindName() string { return "user" }
//
//	type UserID = typedid.ID[userKind]
//
//	id, err := typedid.New[userKind]()
//
// The string inside an ID comes from a generator.Generator resolved for its
// kind, and Parse validates foreign strings against that generator's format.
package typedid

import (
	"errors"
	"fmt"

	"github.com/eykd/typedid-go/pkg/generator"
)

var (
	// ErrEmptyID is returned when parsing an empty string.
	ErrEmptyID = errors.New("empty id")
	// ErrInvalidID is returned when a string is not a valid id of the kind.
	ErrInvalidID = errors.New("invalid id")
)

// Kind names an entity family at the type level. Implementations are
// usually empty structs used only as ID's type argument. Registries match
// KindName in snake_case, the form config files use.
type Kind interface {
	KindName() string
}

// GeneratorProvider is implemented by kinds that pin their own strategy.
// It takes precedence over registry bindings.
type GeneratorProvider interface {
	Generator() generator.Generator
}

// ID is an identifier of entity kind K. The zero ID is empty.
type ID[K Kind] struct {
	value string
}

// New generates an ID with the generator resolved for K in the default
// registry.
func New[K Kind]() (ID[K], error) {
	return NewWith[K](resolve[K](Default()))
}

// NewWith generates an ID with g.
func NewWith[K Kind](g generator.Generator) (ID[K], error) {
	v, err := g.Generate()
	if err != nil {
		return ID[K]{}, fmt.Errorf("generating %s id: %w", kindName[K](), err)
	}
	return ID[K]{value: v}, nil
}

// MustNew is like New but panics on error.
func MustNew[K Kind]() ID[K] {
	id, err := New[K]()
	if err != nil {
		panic(err)
	}
	return id
}

// Parse validates s with the generator resolved for K in the default
// registry.
func Parse[K Kind](s string) (ID[K], error) {
	return ParseWith[K](resolve[K](Default()), s)
}

// ParseWith validates s with g.
func ParseWith[K Kind](g generator.Generator, s string) (ID[K], error) {
	if s == "" {
		return ID[K]{}, fmt.Errorf("%s: %w", kindName[K](), ErrEmptyID)
	}
	if err := g.Validate(s); err != nil {
		return ID[K]{}, fmt.Errorf("%w: %s: %w", ErrInvalidID, kindName[K](), err)
	}
	return ID[K]{value: s}, nil
}

// MustParse is like Parse but panics on error. Use it for literals in tests
// and fixtures.
func MustParse[K Kind](s string) ID[K] {
	id, err := Parse[K](s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the raw identifier.
func (id ID[K]) String() string { return id.value }

// Kind returns the entity kind name.
func (id ID[K]) Kind() string { return kindName[K]() }

// IsZero reports whether id is empty.
func (id ID[K]) IsZero() bool { return id.value == "" }

// Equal reports whether id and other hold the same value. Comparing IDs of
// different kinds does not compile.
func (id ID[K]) Equal(other ID[K]) bool { return id.value == other.value }

// Equals reports whether other is an ID of the same kind with the same
// value. IDs of other kinds are never equal, whatever their value.
func (id ID[K]) Equals(other any) bool {
	switch o := other.(type) {
	case ID[K]:
		return id.value == o.value
	case *ID[K]:
		return o != nil && id.value == o.value
	default:
		return false
	}
}

// GoString shows the kind alongside the value in %#v output.
func (id ID[K]) GoString() string {
	return fmt.Sprintf("typedid.ID[%s](%q)", kindName[K](), id.value)
}

func kindName[K Kind]() string {
	var k K
	return k.KindName()
}

// resolve picks K's generator: its own GeneratorProvider, then r.
func resolve[K Kind](r *Registry) generator.Generator {
	var k K
	if p, ok := any(k).(GeneratorProvider); ok {
		if g := p.Generator(); g != nil {
			return g
		}
	}
	return r.Resolve(k.KindName())
}
