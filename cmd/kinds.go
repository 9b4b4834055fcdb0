package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eykd/typedid-go/pkg/generator"
)

type kindsResponse struct {
	Config  string                    `json:"config"`
	Default generator.Spec            `json:"default"`
	Kinds   map[string]generator.Spec `json:"kinds"`
}

// NewKindsCmd creates the kinds command.
func NewKindsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:          "kinds",
		Short:        "Show the strategy bound to each configured kind",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := env.load(cmd.Context())
			if err != nil {
				return err
			}

			resp := kindsResponse{
				Config:  l.path,
				Default: l.cfg.FallbackSpec(),
				Kinds:   make(map[string]generator.Spec, len(l.cfg.Kinds)),
			}
			for _, kind := range l.cfg.KindNames() {
				resp.Kinds[kind] = l.cfg.Spec(kind)
			}

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), resp)
				return nil
			}
			out := cmd.OutOrStdout()
			if l.path == "" {
				fmt.Fprintln(out, "config: (built-in defaults)")
			} else {
				fmt.Fprintf(out, "config: %s\n", l.path)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "*\t%s\n", describeSpec(resp.Default))
			for _, kind := range l.cfg.KindNames() {
				fmt.Fprintf(tw, "%s\t%s\n", kind, describeSpec(resp.Kinds[kind]))
			}
			return tw.Flush()
		},
	}
}

// describeSpec renders a spec as "name key=value ...".
func describeSpec(s generator.Spec) string {
	parts := []string{s.Name}
	if s.Prefix != "" {
		sep := s.Separator
		if sep == "" {
			sep = "_"
		}
		parts = append(parts, "prefix="+s.Prefix+sep)
	}
	if s.Length != nil {
		parts = append(parts, fmt.Sprintf("length=%d", *s.Length))
	}
	if s.Version != 0 {
		parts = append(parts, fmt.Sprintf("version=%d", s.Version))
	}
	if s.Alphabet != "" {
		parts = append(parts, fmt.Sprintf("alphabet=%q", s.Alphabet))
	}
	if s.Salt != "" {
		parts = append(parts, "salt=***")
	}
	if s.MinLength != 0 {
		parts = append(parts, fmt.Sprintf("min_length=%d", s.MinLength))
	}
	return strings.Join(parts, " ")
}
