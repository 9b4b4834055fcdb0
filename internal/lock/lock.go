// Package lock serializes tid commands that append to the reservation
// ledger.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyLocked is returned when another tid process holds the ledger.
var ErrAlreadyLocked = errors.New("another tid command is already running")

// Flocker is the part of flock.Flock the ledger lock needs.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Lock is a fail-fast advisory lock.
type Lock struct {
	flocker Flocker
}

// New returns a Lock over f.
func New(f Flocker) *Lock {
	return &Lock{flocker: f}
}

// NewFromPath returns a Lock on the file at path, creating its directory.
func NewFromPath(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	return New(flock.New(path)), nil
}

// TryLock takes the lock without waiting. It returns ErrAlreadyLocked when
// another process holds it.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ok, err := l.flocker.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return ErrAlreadyLocked
	}
	return nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}

// Do runs fn while holding the lock. The lock is released even when fn
// fails; a release error is joined to fn's.
func (l *Lock) Do(ctx context.Context, fn func(context.Context) error) (err error) {
	if err := l.TryLock(ctx); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, l.Unlock())
	}()
	return fn(ctx)
}
