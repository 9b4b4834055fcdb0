package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eykd/typedid-go/internal/ledger"
	"github.com/eykd/typedid-go/pkg/config"
)

const starterConfig = `# Fallback strategy for kinds not listed below.
default: uuid

# Defaults shared by every kind using a strategy.
generators:
  uuid:
    version: 7

# Kind bindings. Kind names are snake_case.
kinds:
  user:
    generator: nanoid
    prefix: usr
  order:
    generator: ulid
`

// NewInitCmd creates the init command. The getwd function returns the
// directory where the project will be initialized.
func NewInitCmd(getwd func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "init",
		Short:        "Initialize a tid project in the current directory",
		Long:         "Create the .tid directory that holds the reservation ledger and a starter typedid.yaml.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}

			dir := filepath.Join(cwd, ledger.Dir)
			if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
				fmt.Fprintln(cmd.OutOrStdout(), "tid project already initialized")
				return nil
			}
			if err := ledger.Init(cwd); err != nil {
				return err
			}

			cfgPath := filepath.Join(cwd, config.FileName)
			switch _, err := os.Stat(cfgPath); {
			case errors.Is(err, os.ErrNotExist):
				if err := os.WriteFile(cfgPath, []byte(starterConfig), 0o644); err != nil {
					return &ContextError{Op: "writing config", Path: cfgPath, Err: err}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.FileName)
			case err != nil:
				return &ContextError{Op: "checking config", Path: cfgPath, Err: err}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized tid project")
			return nil
		},
	}
}
