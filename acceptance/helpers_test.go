package acceptance_test

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// runTid executes the tid binary in dir with stdin and returns stdout,
// stderr and the exit code.
func runTid(t *testing.T, dir, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(tidBinary, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("failed to run tid: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), exitCode
}

// runTidSuccess runs tid expecting exit code 0 and returns stdout.
func runTidSuccess(t *testing.T, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, exitCode := runTid(t, dir, "", args...)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\nargs: %v\nstdout: %s\nstderr: %s", exitCode, args, stdout, stderr)
	}
	return stdout
}

// initProject creates a temp dir and initializes a tid project in it.
func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runTidSuccess(t, dir, "init")
	return dir
}

func outputLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
