package typedid

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/eykd/typedid-go/internal/slug"
	"github.com/eykd/typedid-go/pkg/generator"
)

// Registry binds kind names to generators. Kinds without a binding use the
// fallback. Names are keyed in snake_case, so "UserAccount", "user-account"
// and "user_account" are the same kind. A Registry is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]generator.Generator
	fallback generator.Generator
}

// NewRegistry returns an empty Registry. A nil fallback means UUID v4.
func NewRegistry(fallback generator.Generator) *Registry {
	if fallback == nil {
		fallback = defaultFallback()
	}
	return &Registry{
		bindings: make(map[string]generator.Generator),
		fallback: fallback,
	}
}

// Bind sets the generator for kind. Binding nil removes the binding.
func (r *Registry) Bind(kind string, g generator.Generator) {
	kind = slug.Snake(kind)
	r.mu.Lock()
	defer r.mu.Unlock()
	if g == nil {
		delete(r.bindings, kind)
		return
	}
	r.bindings[kind] = g
}

// Resolve returns the generator bound to kind, or the fallback.
func (r *Registry) Resolve(kind string) generator.Generator {
	kind = slug.Snake(kind)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.bindings[kind]; ok {
		return g
	}
	return r.fallback
}

// Lookup is like Resolve but reports whether kind has its own binding.
func (r *Registry) Lookup(kind string) (generator.Generator, bool) {
	kind = slug.Snake(kind)
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.bindings[kind]
	return g, ok
}

// Fallback returns the generator used for unbound kinds.
func (r *Registry) Fallback() generator.Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Kinds returns the bound kind names in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(NewRegistry(nil))
}

// Default returns the process-wide registry used by New and Parse.
func Default() *Registry { return defaultRegistry.Load() }

// SetDefault replaces the process-wide registry and returns the previous
// one. A nil r installs an empty registry.
func SetDefault(r *Registry) *Registry {
	if r == nil {
		r = NewRegistry(nil)
	}
	return defaultRegistry.Swap(r)
}

func defaultFallback() generator.Generator {
	g, err := generator.NewUUID()
	if err != nil {
		panic(err)
	}
	return g
}
