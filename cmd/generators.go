package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eykd/typedid-go/pkg/generator"
)

var generatorDescriptions = map[string]string{
	generator.NameNanoID:       "21 URL-safe symbols (A-Z a-z 0-9 _ -)",
	generator.NameBase58:       "21 Base58 symbols, no 0 O I l",
	generator.NameRandomString: "16 alphanumeric symbols",
	generator.NameRandomBytes:  "16 random bytes as lowercase hex",
	generator.NameUUID:         "RFC 9562 UUID, version 1, 4, 6 or 7",
	generator.NameULID:         "26-character time-ordered ULID",
	generator.NameKSUID:        "27-character time-ordered KSUID",
	generator.NameShortUUID:    "22-character base57 UUID v4",
	generator.NameHashids:      "Hashids encoding of a random 53-bit number",
	generator.NameSqids:        "Sqids encoding of a random 53-bit number",
}

type generatorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewGeneratorsCmd creates the generators command.
func NewGeneratorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "generators",
		Short:        "List the available id strategies",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]generatorInfo, 0, len(generator.Names()))
			for _, name := range generator.Names() {
				infos = append(infos, generatorInfo{Name: name, Description: generatorDescriptions[name]})
			}

			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), infos)
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Description)
			}
			return tw.Flush()
		},
	}
}
