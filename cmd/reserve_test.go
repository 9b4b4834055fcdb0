package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eykd/typedid-go/internal/ledger"
	"github.com/eykd/typedid-go/internal/lock"
)

func TestReserve_RequiresProject(t *testing.T) {
	env, _ := testEnv(t, nil)

	_, stderr, code := runTID(t, env, "", "reserve", "user")

	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(stderr, ledger.ErrNoProject.Error()) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestReserve_AppendsToLedger(t *testing.T) {
	env, dir := testEnv(t, nil)
	initProject(t, env)

	stdout, stderr, code := runTID(t, env, "", "reserve", "order", "-n", "3")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	first := lines(stdout)

	stdout, _, code = runTID(t, env, "", "reserve", "order")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	second := lines(stdout)

	data, err := os.ReadFile(filepath.Join(dir, ".tid", "ledger", "order.ids"))
	if err != nil {
		t.Fatalf("reading ledger: %v", err)
	}
	want := strings.Join(append(first, second...), "\n") + "\n"
	if string(data) != want {
		t.Errorf("ledger = %q, want %q", data, want)
	}
	for _, id := range first {
		if len(id) != 26 {
			t.Errorf("order id %q is not a ulid", id)
		}
	}
}

func TestReserve_FromSubdirectory(t *testing.T) {
	env, dir := testEnv(t, nil)
	initProject(t, env)
	sub := filepath.Join(dir, "services", "billing")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	env.Getwd = func() (string, error) { return sub, nil }

	stdout, stderr, code := runTID(t, env, "", "reserve", "user", "--json")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var got reserveResult
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if got.Kind != "user" || len(got.IDs) != 1 || !strings.HasPrefix(got.IDs[0], "usr_") {
		t.Errorf("unexpected result %+v", got)
	}
	if got.Ledger != filepath.Join(dir, ".tid", "ledger", "user.ids") {
		t.Errorf("ledger path = %q", got.Ledger)
	}
}

func TestReserve_LockHeldExitsThree(t *testing.T) {
	env, dir := testEnv(t, nil)
	initProject(t, env)

	held, err := lock.NewFromPath((&ledger.Store{Root: dir}).LockPath())
	if err != nil {
		t.Fatal(err)
	}
	if err := held.TryLock(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	_, stderr, code := runTID(t, env, "", "reserve", "user")

	if code != ExitLocked {
		t.Errorf("exit code = %d, want %d", code, ExitLocked)
	}
	if !strings.Contains(stderr, "already running") {
		t.Errorf("stderr = %q", stderr)
	}
}
