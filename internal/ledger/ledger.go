// Package ledger records reserved ids per kind under a project's .tid
// directory, one id per line in .tid/ledger/<kind>.ids.
package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eykd/typedid-go/internal/slug"
)

// Dir is the project marker directory.
const Dir = ".tid"

var (
	// ErrNoProject is returned when no .tid directory encloses the start
	// directory.
	ErrNoProject = errors.New("no .tid directory found; run `tid init`")
	// ErrInvalidKind is returned for a kind name that is not snake_case.
	ErrInvalidKind = errors.New("invalid kind name")
)

// Store reads and appends ledger files under Root.
type Store struct {
	Root string
}

// Path returns the ledger file for kind.
func (s *Store) Path(kind string) string {
	return filepath.Join(s.Root, Dir, "ledger", kind+".ids")
}

// LockPath returns the file that serializes ledger writers.
func (s *Store) LockPath() string {
	return filepath.Join(s.Root, Dir, "lock")
}

// Load returns every id reserved for kind. A missing ledger is empty.
func (s *Store) Load(ctx context.Context, kind string) (map[string]struct{}, error) {
	if !slug.Valid(kind) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	f, err := os.Open(s.Path(kind))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	ids := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line := strings.TrimSpace(sc.Text()); line != "" {
			ids[line] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.Path(kind), err)
	}
	return ids, nil
}

// Append adds ids to kind's ledger, creating it as needed.
func (s *Store) Append(ctx context.Context, kind string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !slug.Valid(kind) {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if len(ids) == 0 {
		return nil
	}
	path := s.Path(kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, id := range ids {
		w.WriteString(id)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger %s: %w", path, err)
	}
	return nil
}

// Init creates the .tid directory under root. It is a no-op when the
// directory exists.
func Init(root string) error {
	if err := os.MkdirAll(filepath.Join(root, Dir, "ledger"), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", Dir, err)
	}
	return nil
}

// FindRoot walks up from start looking for a .tid directory.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, Dir))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}
