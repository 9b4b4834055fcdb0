// Package cmd contains the CLI commands for the tid application.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/typedid-go/internal/logging"
)

var rootCmd *cobra.Command

// Global flag state shared by every subcommand.
var (
	verbose    bool
	jsonOutput bool
	configPath string
)

func init() {
	rootCmd = BuildCommandTree(DefaultEnv())
}

// GetVerbose reports whether --verbose was given.
func GetVerbose() bool {
	return verbose
}

// GetJSON reports whether --json was given.
func GetJSON() bool {
	return jsonOutput
}

// GetConfigPath returns the --config flag value.
func GetConfigPath() string {
	return configPath
}

// NewRootCmd returns a fresh root command without subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tid",
		Short: "Generate and validate strongly typed entity ids",
		Long: "tid generates, validates and reserves entity ids using the strategies bound to each\n" +
			"kind in typedid.yaml: uuid, ulid, ksuid, nanoid, base58, hashids, sqids and more.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(cmd.ErrOrStderr(), verbose)
			ctx := logging.WithLogger(cmd.Context(), log)
			cmd.SetContext(ctx)
			log.Debug("Running command", zap.String("command", cmd.CommandPath()), zap.Strings("args", args))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to typedid.yaml (default: search the project)")

	return cmd
}

// ExecuteContext runs the root command with the given context.
// Cancelling ctx, as SIGINT does, stops long-running generation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RunContext is like ExecuteContext but returns the process exit code after
// printing any error to stderr.
func RunContext(ctx context.Context) int {
	rootCmd.SetContext(ctx)
	return RunCLI(rootCmd, nil, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr())
}
