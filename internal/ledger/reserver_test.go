package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/eykd/typedid-go/internal/lock"
)

// sequence yields ids from a fixed list, then repeats the last one.
type sequence struct {
	ids []string
	i   int
	err error
}

func (s *sequence) Generate() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	id := s.ids[min(s.i, len(s.ids)-1)]
	s.i++
	return id, nil
}

func (s *sequence) Validate(string) error { return nil }

type passLock struct {
	calls int
	err   error
}

func (p *passLock) Do(ctx context.Context, fn func(context.Context) error) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	return fn(ctx)
}

func TestReserver_Reserve(t *testing.T) {
	ctx := context.Background()
	store := &Store{Root: t.TempDir()}
	if err := store.Append(ctx, "user", []string{"u1", "u3"}); err != nil {
		t.Fatal(err)
	}
	lk := &passLock{}
	r := &Reserver{Store: store, Lock: lk}

	got, err := r.Reserve(ctx, "user", &sequence{ids: []string{"u1", "u2", "u2", "u3", "u4"}}, 2)
	if err != nil {
		t.Fatalf("Reserve() = %v", err)
	}
	if fmt.Sprint(got) != "[u2 u4]" {
		t.Errorf("Reserve() = %v, want [u2 u4]", got)
	}
	if lk.calls != 1 {
		t.Errorf("lock taken %d times, want 1", lk.calls)
	}

	ids, err := store.Load(ctx, "user")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 4 {
		t.Errorf("ledger = %v, want u1..u4", ids)
	}
}

func TestReserver_TooManyCollisions(t *testing.T) {
	ctx := context.Background()
	store := &Store{Root: t.TempDir()}
	if err := store.Append(ctx, "order", []string{"same"}); err != nil {
		t.Fatal(err)
	}
	r := &Reserver{Store: store, Lock: &passLock{}, MaxCollisions: 3}

	_, err := r.Reserve(ctx, "order", &sequence{ids: []string{"same"}}, 1)
	if !errors.Is(err, ErrTooManyCollisions) {
		t.Fatalf("Reserve() = %v, want ErrTooManyCollisions", err)
	}

	ids, _ := store.Load(ctx, "order")
	if len(ids) != 1 {
		t.Errorf("failed reserve must not write; ledger = %v", ids)
	}
}

func TestReserver_Errors(t *testing.T) {
	errEntropy := errors.New("entropy unavailable")

	tests := []struct {
		name    string
		lock    *passLock
		gen     *sequence
		count   int
		wantErr error
	}{
		{"zero count", &passLock{}, &sequence{ids: []string{"a"}}, 0, ErrInvalidCount},
		{"locked", &passLock{err: lock.ErrAlreadyLocked}, &sequence{ids: []string{"a"}}, 1, lock.ErrAlreadyLocked},
		{"generator failure", &passLock{}, &sequence{err: errEntropy}, 1, errEntropy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reserver{Store: &Store{Root: t.TempDir()}, Lock: tt.lock}
			_, err := r.Reserve(context.Background(), "user", tt.gen, tt.count)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Reserve() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReserver_WithFileLock(t *testing.T) {
	ctx := context.Background()
	store := &Store{Root: t.TempDir()}
	lk, err := lock.NewFromPath(store.LockPath())
	if err != nil {
		t.Fatal(err)
	}
	r := &Reserver{Store: store, Lock: lk}

	got, err := r.Reserve(ctx, "invoice", &sequence{ids: []string{"i1", "i2", "i3"}}, 3)
	if err != nil {
		t.Fatalf("Reserve() = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Reserve() = %v", got)
	}
}
