package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/cipher"
)

func newSquareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "square KEYWORD",
		Short: "Show the Playfair key square for a keyword",
		Long: `Show the 5x5 Playfair key square built from a keyword.

The keyword's letters come first, without repeats, followed by the rest
of the alphabet. J shares a cell with I.`,
		Example: `  cipherlab square MONARCHY
  cipherlab square "playfair example"`,

		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			sq, err := cipher.NewKeySquare(keyword)
			if err != nil {
				return err
			}

			ui.Header(fmt.Sprintf("Key square for %q", keyword))
			grid := make([][]string, 0, 5)
			for _, row := range sq.Rows() {
				grid = append(grid, strings.Split(row, ""))
			}
			ui.Grid(grid)
			return nil
		},
	}
}
