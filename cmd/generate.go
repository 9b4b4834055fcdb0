package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/typedid-go/internal/logging"
	"github.com/eykd/typedid-go/internal/slug"
	"github.com/eykd/typedid-go/pkg/generator"
)

// generatorFlags overrides the configured strategy from the command line.
type generatorFlags struct {
	name     string
	alphabet string
	length   int
	version  int
	salt     string
	prefix   string
}

func (f *generatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "generator", "g", "", "Strategy to use instead of the configured one")
	cmd.Flags().StringVar(&f.alphabet, "alphabet", "", "Alphabet override for nanoid, base58, random_string, hashids and sqids")
	cmd.Flags().IntVarP(&f.length, "length", "l", 0, "Length override (symbols, or bytes for random_bytes)")
	cmd.Flags().IntVar(&f.version, "uuid-version", 0, "UUID version: 1, 4, 6 or 7")
	cmd.Flags().StringVar(&f.salt, "salt", "", "Hashids salt")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Prefix ids with <prefix>_")
}

// spec converts the flags to a generator spec.
func (f *generatorFlags) spec(cmd *cobra.Command) generator.Spec {
	s := generator.Spec{
		Name:     f.name,
		Alphabet: f.alphabet,
		Version:  f.version,
		Salt:     f.salt,
		Prefix:   f.prefix,
	}
	if cmd.Flags().Changed("length") {
		n := f.length
		s.Length = &n
	}
	return s
}

// overrides reports whether any strategy parameter flag was given.
func (f *generatorFlags) overrides(cmd *cobra.Command) bool {
	for _, name := range []string{"alphabet", "length", "uuid-version", "salt", "prefix"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resolve picks the generator for kind: the --generator override when
// given, otherwise the configured binding with any parameter flags merged
// over its settings.
func (f *generatorFlags) resolve(cmd *cobra.Command, env *Env, kind string) (generator.Generator, string, error) {
	if f.name != "" {
		g, err := generator.Build(f.spec(cmd), env.generatorOptions()...)
		if err != nil {
			return nil, "", err
		}
		return g, f.name, nil
	}

	l, err := env.load(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	if !f.overrides(cmd) {
		return l.registry.Resolve(kind), l.cfg.Spec(kind).Name, nil
	}

	spec := l.cfg.Override(kind, f.spec(cmd))
	logging.Get(cmd.Context()).Debug("Overriding configured generator",
		zap.String("kind", kind), zap.String("generator", spec.Name))
	g, err := generator.Build(spec, env.generatorOptions()...)
	if err != nil {
		return nil, "", err
	}
	return g, spec.Name, nil
}

type generateResult struct {
	Kind      string   `json:"kind,omitempty"`
	Generator string   `json:"generator"`
	IDs       []string `json:"ids"`
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(env *Env) *cobra.Command {
	var (
		count int
		gf    generatorFlags
	)

	cmd := &cobra.Command{
		Use:   "generate [kind]",
		Short: "Generate new ids",
		Long: "Generate new ids with the strategy bound to kind in typedid.yaml, or with the\n" +
			"default strategy when no kind is given.",
		Example: "  tid generate user\n" +
			"  tid generate -n 5 --generator nanoid --length 12\n" +
			"  tid generate order --prefix ord --json",
		Aliases:      []string{"gen", "new"},
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			var kind string
			if len(args) == 1 {
				kind = slug.Snake(args[0])
				if kind == "" {
					return fmt.Errorf("invalid kind name %q", args[0])
				}
			}

			g, name, err := gf.resolve(cmd, env, kind)
			if err != nil {
				return err
			}
			ids, err := generateN(cmd.Context(), g, count)
			if err != nil {
				return err
			}
			logging.Get(cmd.Context()).Debug("Generated ids",
				zap.String("kind", kind), zap.String("generator", name), zap.Int("count", len(ids)))

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), generateResult{Kind: kind, Generator: name, IDs: ids})
				return nil
			}
			writeLines(cmd.OutOrStdout(), ids)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ids to generate")
	gf.register(cmd)

	return cmd
}

func generateN(ctx context.Context, g generator.Generator, n int) ([]string, error) {
	ids := make([]string, 0, n)
	for range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := g.Generate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
