package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eykd/typedid-go/pkg/config"
)

func TestInitCmd_CreatesProject(t *testing.T) {
	tmp := t.TempDir()

	cmd := NewInitCmd(func() (string, error) { return tmp, nil })
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmp, ".tid", "ledger"))
	if err != nil || !info.IsDir() {
		t.Fatalf(".tid/ledger not created: %v", err)
	}
	if _, err := config.Load(filepath.Join(tmp, "typedid.yaml")); err != nil {
		t.Errorf("starter config does not load: %v", err)
	}
	if !strings.Contains(buf.String(), "Initialized tid project") {
		t.Errorf("expected confirmation message, got: %q", buf.String())
	}
}

func TestInitCmd_KeepsExistingConfig(t *testing.T) {
	tmp := t.TempDir()
	path := writeConfig(t, tmp, "default: ksuid\n")

	cmd := NewInitCmd(func() (string, error) { return tmp, nil })
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "default: ksuid\n" {
		t.Errorf("existing config overwritten: %q", data)
	}
	if strings.Contains(buf.String(), "Wrote") {
		t.Errorf("unexpected write message: %q", buf.String())
	}
}

func TestInitCmd_AlreadyInitialized(t *testing.T) {
	tmp := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmp, ".tid"), 0o755); err != nil {
		t.Fatal(err)
	}

	cmd := NewInitCmd(func() (string, error) { return tmp, nil })
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "already initialized") {
		t.Errorf("expected 'already initialized' message, got: %q", buf.String())
	}
}

func TestInitCmd_GetwdError(t *testing.T) {
	cmd := NewInitCmd(func() (string, error) { return "", os.ErrPermission })
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error, got nil")
	}
}
