package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eykd/typedid-go/internal/logging"
	"github.com/eykd/typedid-go/pkg/generator"
)

// DefaultMaxCollisions bounds how many already-reserved ids Reserve may
// draw before giving up.
const DefaultMaxCollisions = 16

// ErrTooManyCollisions is returned when the generator keeps producing ids
// that are already reserved, which means its id space is nearly exhausted.
var ErrTooManyCollisions = errors.New("too many collisions with reserved ids")

// ErrInvalidCount is returned when asked for fewer than one id.
var ErrInvalidCount = errors.New("count must be at least 1")

// Locker runs fn while holding the ledger lock.
type Locker interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

// Reserver draws ids that have never been reserved for a kind and records
// them in the ledger.
type Reserver struct {
	Store         *Store
	Lock          Locker
	MaxCollisions int
}

// Reserve generates n ids for kind with g, skipping any already in the
// ledger or drawn earlier in the same call, and appends them.
func (r *Reserver) Reserve(ctx context.Context, kind string, g generator.Generator, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	var out []string
	err := r.Lock.Do(ctx, func(ctx context.Context) error {
		taken, err := r.Store.Load(ctx, kind)
		if err != nil {
			return err
		}
		out, err = r.draw(ctx, kind, g, n, taken)
		if err != nil {
			return err
		}
		return r.Store.Append(ctx, kind, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reserver) draw(ctx context.Context, kind string, g generator.Generator, n int, taken map[string]struct{}) ([]string, error) {
	limit := r.MaxCollisions
	if limit <= 0 {
		limit = DefaultMaxCollisions
	}
	log := logging.Get(ctx)

	ids := make([]string, 0, n)
	collisions := 0
	for len(ids) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := g.Generate()
		if err != nil {
			return nil, err
		}
		if _, dup := taken[id]; dup {
			collisions++
			log.Debug("Reserved id collision", zap.String("kind", kind), zap.String("id", id), zap.Int("collisions", collisions))
			if collisions > limit {
				return nil, fmt.Errorf("%w: kind %q after %d draws", ErrTooManyCollisions, kind, len(ids)+collisions)
			}
			continue
		}
		taken[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
