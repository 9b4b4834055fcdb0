package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eykd/typedid-go/internal/lock"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInvalid = 2
	ExitLocked  = 3
)

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// InvalidIDsError is returned by validate when any id fails.
type InvalidIDsError struct {
	Kind    string
	Invalid int
	Total   int
}

// Error implements the error interface.
func (e *InvalidIDsError) Error() string {
	return fmt.Sprintf("%d of %d %s ids are invalid", e.Invalid, e.Total, e.Kind)
}

// ExitCode returns ExitInvalid.
func (e *InvalidIDsError) ExitCode() int {
	return ExitInvalid
}

// ExitCodeFromError maps err to a process exit code: 0 for nil, the
// error's own code for an ExitCoder, ExitLocked for a held ledger lock and
// ExitFailure otherwise.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	if errors.Is(err, lock.ErrAlreadyLocked) {
		return ExitLocked
	}
	return ExitFailure
}

// ContextError adds operation and path context to an underlying error.
type ContextError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the formatted error string with context.
func (e *ContextError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	return strings.Join(append(parts, e.Err.Error()), ": ")
}

// Unwrap returns the underlying error.
func (e *ContextError) Unwrap() error {
	return e.Err
}

// FormatError formats an error with the "tid: " prefix and trailing newline.
func FormatError(err error) string {
	return fmt.Sprintf("tid: %s\n", err.Error())
}

// RunCLI executes cmd with args, writing output to stdout and errors to
// stderr, and returns the exit code. A nil args slice means os.Args[1:].
func RunCLI(cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if args == nil {
		args = os.Args[1:]
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprint(stderr, FormatError(err))
		return ExitCodeFromError(err)
	}
	return ExitOK
}
