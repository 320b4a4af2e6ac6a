package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/cipher"
)

func newCiphersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ciphers [NAME]",
		Short: "List the supported ciphers",
		Long: `List the supported ciphers with their key formats, or describe one
cipher in detail.`,
		Example: `  cipherlab ciphers
  cipherlab ciphers hill`,

		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cipherCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				kind, err := parseCipher(args[0])
				if err != nil {
					return err
				}
				info, _ := cipher.Describe(kind)
				describeCipher(info)
				return nil
			}

			rows := make([][]string, 0, len(cipher.Kinds))
			for _, info := range cipher.Catalog() {
				rows = append(rows, []string{info.Kind.String(), info.Title, info.Type, info.KeyHint})
			}
			ui.Table([]string{"NAME", "CIPHER", "TYPE", "KEY"}, rows)
			return nil
		},
	}
}

func describeCipher(info cipher.Info) {
	ui.Header(info.Title)
	ui.Field("Name", info.Kind.String())
	ui.Field("Type", info.Type)
	ui.Field("Idea", info.Idea)
	ui.Field("Key", info.KeyHint)
	ui.Field("Example", info.KeyPlaceholder)
	if info.Lossy {
		ui.Field("Round trip", "normalized (uppercase letters, may be padded)")
	} else {
		ui.Field("Round trip", "exact")
	}
}
