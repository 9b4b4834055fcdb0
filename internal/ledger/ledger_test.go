package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_AppendLoad(t *testing.T) {
	ctx := context.Background()
	s := &Store{Root: t.TempDir()}

	got, err := s.Load(ctx, "user")
	if err != nil {
		t.Fatalf("Load() on missing ledger = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load() = %v, want empty", got)
	}

	if err := s.Append(ctx, "user", []string{"a1", "b2"}); err != nil {
		t.Fatalf("Append() = %v", err)
	}
	if err := s.Append(ctx, "user", []string{"c3"}); err != nil {
		t.Fatalf("Append() = %v", err)
	}
	if err := s.Append(ctx, "user", nil); err != nil {
		t.Fatalf("Append(nil) = %v", err)
	}

	got, err = s.Load(ctx, "user")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	for _, id := range []string{"a1", "b2", "c3"} {
		if _, ok := got[id]; !ok {
			t.Errorf("ledger missing %q", id)
		}
	}
	if len(got) != 3 {
		t.Errorf("ledger has %d ids, want 3", len(got))
	}

	data, err := os.ReadFile(filepath.Join(s.Root, ".tid", "ledger", "user.ids"))
	if err != nil {
		t.Fatalf("reading ledger file: %v", err)
	}
	if string(data) != "a1\nb2\nc3\n" {
		t.Errorf("ledger file = %q", data)
	}
}

func TestStore_SkipsBlankLines(t *testing.T) {
	s := &Store{Root: t.TempDir()}
	path := s.Path("order")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x\n\n  \ny\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(context.Background(), "order")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Load() = %v, want x and y", got)
	}
}

func TestStore_RejectsInvalidKind(t *testing.T) {
	ctx := context.Background()
	s := &Store{Root: t.TempDir()}

	for _, kind := range []string{"", "../etc", "User", "a/b"} {
		if _, err := s.Load(ctx, kind); !errors.Is(err, ErrInvalidKind) {
			t.Errorf("Load(%q) = %v, want ErrInvalidKind", kind, err)
		}
		if err := s.Append(ctx, kind, []string{"x"}); !errors.Is(err, ErrInvalidKind) {
			t.Errorf("Append(%q) = %v, want ErrInvalidKind", kind, err)
		}
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := Init(root); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if err := Init(root); err != nil {
		t.Fatalf("second Init() = %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot() = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRoot() = %q, want %q", got, want)
	}

	if _, err := FindRoot(t.TempDir()); !errors.Is(err, ErrNoProject) {
		t.Errorf("FindRoot() outside a project = %v, want ErrNoProject", err)
	}
}
