package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/typedid-go/internal/logging"
	"github.com/eykd/typedid-go/internal/slug"
	"github.com/eykd/typedid-go/pkg/generator"
)

// ValidationResult is the outcome for one id.
type ValidationResult struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type validateResponse struct {
	Kind    string             `json:"kind"`
	Results []ValidationResult `json:"results"`
	Summary struct {
		Valid   int `json:"valid"`
		Invalid int `json:"invalid"`
	} `json:"summary"`
}

// NewValidateCmd creates the validate command.
func NewValidateCmd(env *Env) *cobra.Command {
	var gf generatorFlags

	cmd := &cobra.Command{
		Use:   "validate <kind> [id...]",
		Short: "Check ids against a kind's format",
		Long: "Validate each id against the strategy bound to kind. With no ids on the command\n" +
			"line, ids are read from stdin, one per line. Exits 2 when any id is invalid.",
		Example:      "  tid validate user usr_V1StGXR8Z5jdHi6B\n  tid generate order -n 3 | tid validate order",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := slug.Snake(args[0])
			if kind == "" {
				return fmt.Errorf("invalid kind name %q", args[0])
			}
			ids := args[1:]
			if len(ids) == 0 {
				var err error
				if ids, err = readIDs(cmd); err != nil {
					return err
				}
			}

			g, _, err := gf.resolve(cmd, env, kind)
			if err != nil {
				return err
			}
			resp := validateAll(g, kind, ids)
			logging.Get(cmd.Context()).Debug("Validated ids",
				zap.String("kind", kind), zap.Int("valid", resp.Summary.Valid), zap.Int("invalid", resp.Summary.Invalid))

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), resp)
			} else {
				for _, r := range resp.Results {
					if r.Valid {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\tvalid\n", r.ID)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\tinvalid: %s\n", r.ID, r.Error)
					}
				}
			}
			if resp.Summary.Invalid > 0 {
				return &InvalidIDsError{Kind: kind, Invalid: resp.Summary.Invalid, Total: len(ids)}
			}
			return nil
		},
	}

	gf.register(cmd)

	return cmd
}

func validateAll(g generator.Generator, kind string, ids []string) validateResponse {
	resp := validateResponse{Kind: kind, Results: make([]ValidationResult, 0, len(ids))}
	for _, id := range ids {
		r := ValidationResult{ID: id, Valid: true}
		if err := g.Validate(id); err != nil {
			r.Valid = false
			r.Error = err.Error()
			resp.Summary.Invalid++
		} else {
			resp.Summary.Valid++
		}
		resp.Results = append(resp.Results, r)
	}
	return resp
}

func readIDs(cmd *cobra.Command) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			ids = append(ids, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ids from stdin: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no ids given")
	}
	return ids, nil
}
