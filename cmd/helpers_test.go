package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// zeroReader is a random source that only yields zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// testEnv returns an Env rooted at a fresh temp directory.
func testEnv(t *testing.T, rand io.Reader) (*Env, string) {
	t.Helper()
	dir := t.TempDir()
	return &Env{Getwd: func() (string, error) { return dir, nil }, Rand: rand}, dir
}

// runTID runs a fresh command tree and returns stdout, stderr and the exit
// code.
func runTID(t *testing.T, env *Env, stdin string, args ...string) (string, string, int) {
	t.Helper()
	root := BuildCommandTree(env)
	root.SetIn(strings.NewReader(stdin))
	var stdout, stderr bytes.Buffer
	code := RunCLI(root, args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// initProject runs tid init in dir.
func initProject(t *testing.T, env *Env) {
	t.Helper()
	if _, stderr, code := runTID(t, env, "", "init"); code != 0 {
		t.Fatalf("tid init exited %d: %s", code, stderr)
	}
}

func writeConfig(t *testing.T, dir, doc string) string {
	t.Helper()
	path := filepath.Join(dir, "typedid.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
