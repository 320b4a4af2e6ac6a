package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/export"
	"github.com/vaultenv/cipherlab/pkg/history"
)

// historyFilter holds the flags that narrow down the history
type historyFilter struct {
	cipherName string
	direction  string
	limit      int
}

func (f *historyFilter) addFlags(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().StringVarP(&f.cipherName, "cipher", "c", "", "only show this cipher")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "only show enc or dec operations")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", defaultLimit, "number of most recent entries (0 for all)")
	cmd.RegisterFlagCompletionFunc("cipher", cipherCompletion)
}

func (f *historyFilter) query() (history.Query, error) {
	q := history.Query{Limit: f.limit}
	if f.cipherName != "" {
		kind, err := parseCipher(f.cipherName)
		if err != nil {
			return q, err
		}
		q.Cipher = kind
	}
	if f.direction != "" {
		dir, err := cipher.ParseDirection(f.direction)
		if err != nil {
			return q, err
		}
		q.Direction = dir
	}
	return q, nil
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show, export or clear the operation history",
		Long: `Every successful encryption and decryption is recorded with its cipher,
input, output and time. The history lives in a SQLite database by default
(history.path in the configuration).`,
		Example: `  # Last 20 operations
  cipherlab history

  # Only Playfair encryptions
  cipherlab history list --cipher playfair --direction enc

  # Export everything as CSV
  cipherlab history export --format csv --output history.csv

  # Start over
  cipherlab history clear --force`,
	}

	list := newHistoryListCommand()
	cmd.AddCommand(list, newHistoryExportCommand(), newHistoryClearCommand())

	// Default action is to list
	cmd.Flags().AddFlagSet(list.Flags())
	cmd.RunE = list.RunE

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	filter := &historyFilter{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, filter)
		},
	}

	filter.addFlags(cmd, 20)

	return cmd
}

func runHistoryList(cmd *cobra.Command, filter *historyFilter) error {
	q, err := filter.query()
	if err != nil {
		return err
	}

	rec, err := openRecorder(GetConfig(cmd))
	if err != nil {
		return err
	}
	defer rec.Close()

	entries, err := rec.List(q)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		ui.Info("No operations recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Clock(),
			humanize.Time(e.Timestamp),
			e.Cipher.String(),
			e.Direction.String(),
			truncate(e.Input, 30),
			truncate(e.Output, 30),
		})
	}

	ui.Header(fmt.Sprintf("History (%s %s)", humanize.Comma(int64(len(entries))), pluralize(len(entries), "entry", "entries")))
	ui.Table([]string{"TIME", "WHEN", "CIPHER", "DIR", "INPUT", "OUTPUT"}, rows)
	return nil
}

func newHistoryExportCommand() *cobra.Command {
	var (
		format    string
		output    string
		omitInput bool
	)
	filter := &historyFilter{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as json, yaml, csv or log lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filter.query()
			if err != nil {
				return err
			}

			exporter, err := export.NewExporterFactory().CreateExporter(format)
			if err != nil {
				return err
			}
			if omitInput {
				if err := setOmitInput(exporter); err != nil {
					return err
				}
			}

			rec, err := openRecorder(GetConfig(cmd))
			if err != nil {
				return err
			}
			defer rec.Close()

			entries, err := rec.List(q)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}

			if err := exporter.Export(entries, w); err != nil {
				return fmt.Errorf("failed to export history: %w", err)
			}

			if output != "" {
				ui.Success("Exported %d %s to %s", len(entries), pluralize(len(entries), "entry", "entries"), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: json, yaml, csv or log")
	cmd.Flags().StringVar(&output, "output", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&omitInput, "omit-input", false, "leave plaintexts and ciphertext inputs out")
	filter.addFlags(cmd, 0)

	cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return export.NewExporterFactory().GetSupportedFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// setOmitInput turns on OmitInput for exporters that support it
func setOmitInput(e export.Exporter) error {
	switch ex := e.(type) {
	case *export.JSONExporter:
		ex.Options.OmitInput = true
	case *export.YAMLExporter:
		ex.Options.OmitInput = true
	case *export.CSVExporter:
		ex.Options.OmitInput = true
	case *export.TemplateExporter:
		ex.Options.OmitInput = true
	default:
		return fmt.Errorf("--omit-input is not supported for %s", e.FileExtension())
	}
	return nil
}

func newHistoryClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirm(cmd, "Delete the whole history?")
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("clear cancelled (use --force to skip confirmation)")
				}
			}

			rec, err := openRecorder(GetConfig(cmd))
			if err != nil {
				return err
			}
			defer rec.Close()

			if err := rec.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			ui.Success("History cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
