package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/typedid-go/internal/ledger"
	"github.com/eykd/typedid-go/internal/lock"
	"github.com/eykd/typedid-go/internal/logging"
	"github.com/eykd/typedid-go/internal/slug"
)

type reserveResult struct {
	Kind   string   `json:"kind"`
	IDs    []string `json:"ids"`
	Ledger string   `json:"ledger"`
}

// NewReserveCmd creates the reserve command.
func NewReserveCmd(env *Env) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "reserve <kind>",
		Short: "Generate ids never handed out before and record them",
		Long: "Generate ids for kind that do not appear in the project's ledger\n" +
			"(.tid/ledger/<kind>.ids) and append them to it. Concurrent runs in the same\n" +
			"project are refused with exit code 3.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := slug.Snake(args[0])
			if kind == "" {
				return fmt.Errorf("invalid kind name %q", args[0])
			}
			root, err := env.projectRoot()
			if err != nil {
				return err
			}
			l, err := env.load(cmd.Context())
			if err != nil {
				return err
			}

			store := &ledger.Store{Root: root}
			lk, err := lock.NewFromPath(store.LockPath())
			if err != nil {
				return err
			}
			r := &ledger.Reserver{Store: store, Lock: lk}
			ids, err := r.Reserve(cmd.Context(), kind, l.registry.Resolve(kind), count)
			if err != nil {
				return err
			}
			logging.Get(cmd.Context()).Debug("Reserved ids",
				zap.String("kind", kind), zap.Int("count", len(ids)), zap.String("ledger", store.Path(kind)))

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), reserveResult{Kind: kind, IDs: ids, Ledger: store.Path(kind)})
				return nil
			}
			writeLines(cmd.OutOrStdout(), ids)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ids to reserve")

	return cmd
}
