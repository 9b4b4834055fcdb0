package cmd

import "github.com/spf13/cobra"

// BuildCommandTree returns a root command with every subcommand wired to
// env.
func BuildCommandTree(env *Env) *cobra.Command {
	if env == nil {
		env = DefaultEnv()
	}
	root := NewRootCmd()
	root.AddCommand(
		NewGenerateCmd(env),
		NewValidateCmd(env),
		NewReserveCmd(env),
		NewGeneratorsCmd(),
		NewKindsCmd(env),
		NewInitCmd(env.Getwd),
	)
	return root
}
