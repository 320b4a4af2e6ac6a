package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/history"
	"github.com/vaultenv/cipherlab/pkg/metrics"
)

func newStatsCommand() *cobra.Command {
	var cipherName string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the history and measure texts",
		Long: `Without a subcommand, stats summarizes the history: how many operations
ran per cipher, plus the entropy of the latest encryption of one cipher
and the avalanche between it and the encryption before it.`,
		Example: `  # Summary for the default cipher
  cipherlab stats

  # Summary for Vigenère
  cipherlab stats --cipher vigenere

  # Entropy of any text
  cipherlab stats entropy "KHOOR ZRUOG"

  # Avalanche between two ciphertexts
  cipherlab stats avalanche "KHOOR" "KHOOS"`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsSummary(cmd, cipherName)
		},
	}

	cmd.Flags().StringVarP(&cipherName, "cipher", "c", "",
		"cipher whose latest encryptions are measured (default from config)")
	cmd.RegisterFlagCompletionFunc("cipher", cipherCompletion)

	cmd.AddCommand(newStatsEntropyCommand(), newStatsAvalancheCommand())

	return cmd
}

func runStatsSummary(cmd *cobra.Command, cipherName string) error {
	cfg := GetConfig(cmd)

	if cipherName == "" {
		cipherName = cfg.Defaults.Cipher
	}
	kind, err := parseCipher(cipherName)
	if err != nil {
		return err
	}

	rec, err := openRecorder(cfg)
	if err != nil {
		return err
	}
	defer rec.Close()

	entries, err := rec.List(history.Query{})
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		ui.Info("No operations recorded yet")
		return nil
	}

	summary := history.Summarize(entries, kind)

	ui.Header("History")
	ui.Field("Operations", fmt.Sprintf("%d", summary.Total))
	ui.Field("Encryptions", fmt.Sprintf("%d", summary.Encryptions))
	ui.Field("Decryptions", fmt.Sprintf("%d", summary.Decryptions))

	var rows [][]string
	for _, k := range cipher.Kinds {
		if n := summary.PerCipher[k]; n > 0 {
			rows = append(rows, []string{k.String(), fmt.Sprintf("%d", n)})
		}
	}
	ui.Table([]string{"CIPHER", "OPERATIONS"}, rows)

	ui.Header(fmt.Sprintf("Latest %s encryption", kind))
	if summary.Latest == nil {
		ui.Info("No %s encryptions recorded yet", kind)
		return nil
	}

	bits := summary.Latest.EntropyBits
	rating := metrics.RateEntropy(bits)
	ui.Gauge("Entropy", metrics.EntropyPercent(bits), levelFor(rating),
		fmt.Sprintf("%.2f bits/symbol %s", bits, rating))

	if !summary.Compared {
		ui.Info("Encrypt with %s once more to compare avalanche", kind)
		return nil
	}
	pct := summary.Latest.AvalanchePercent
	avalancheRating := metrics.RateAvalanche(pct)
	ui.Gauge("Avalanche", pct, levelFor(avalancheRating),
		fmt.Sprintf("%.2f%% %s", pct, avalancheRating))
	return nil
}

func newStatsEntropyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entropy TEXT",
		Short: "Shannon entropy of a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			bits := metrics.Entropy(text)
			rating := metrics.RateEntropy(bits)

			ui.Field("Entropy", fmt.Sprintf("%.4f bits/symbol", bits))
			ui.Field("Maximum", fmt.Sprintf("%.4f bits/symbol for %d distinct symbols",
				metrics.MaxEntropy(text), len(distinct(text))))
			ui.Gauge("Strength", metrics.EntropyPercent(bits), levelFor(rating),
				fmt.Sprintf("%.1f%% of %.0f bits %s", metrics.EntropyPercent(bits), metrics.MaxBitsPerSymbol, rating))
			return nil
		},
	}
}

func newStatsAvalancheCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "avalanche CIPHERTEXT OTHER",
		Short: "Share of positions that differ between two texts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len([]rune(args[0])) != len([]rune(args[1])) {
				ui.Warning("Texts differ in length and cannot be compared")
			}
			pct := metrics.Avalanche(args[0], args[1])
			rating := metrics.RateAvalanche(pct)
			ui.Gauge("Avalanche", pct, levelFor(rating), fmt.Sprintf("%.2f%% %s", pct, rating))
			return nil
		},
	}
}

func distinct(text string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range text {
		set[r] = struct{}{}
	}
	return set
}
