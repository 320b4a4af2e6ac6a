package cmd

import (
	"github.com/spf13/cobra"
)

// aliasMap maps short aliases to the commands they stand for
var aliasMap = map[string]string{
	"enc": "encrypt",
	"e":   "encrypt",
	"dec": "decrypt",
	"d":   "decrypt",
	"a":   "analyze",
	"sq":  "square",
	"h":   "history",
	"k":   "key",
	"c":   "config",
}

// addAliases adds short aliases for common commands
func addAliases(rootCmd *cobra.Command) {
	for alias, original := range aliasMap {
		if cmd := findCommand(rootCmd, original); cmd != nil {
			// Registered as a cobra alias so flags and subcommands are shared
			// and the alias stays out of the command list
			cmd.Aliases = append(cmd.Aliases, alias)
		}
	}

	// Add some composite aliases for common workflows
	addWorkflowAliases(rootCmd)
}

// addWorkflowAliases adds aliases for common workflows
func addWorkflowAliases(rootCmd *cobra.Command) {
	// Quick look at the history, equivalent to: cipherlab history list
	quickList := &cobra.Command{
		Use:    "ls",
		Short:  "List recent operations",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, &historyFilter{limit: 20})
		},
	}
	rootCmd.AddCommand(quickList)
}

// findCommand searches the direct children of cmd by name
func findCommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, subCmd := range cmd.Commands() {
		if subCmd.Name() == name {
			return subCmd
		}
	}
	return nil
}

// AddShortHelp adds a help topic for aliases
func AddShortHelp(rootCmd *cobra.Command) {
	aliasHelp := &cobra.Command{
		Use:   "aliases",
		Short: "List all available command aliases",
		Long: `cipherlab supports short aliases for common commands.

Available aliases:
  enc, e  → encrypt    Encrypt a message
  dec, d  → decrypt    Decrypt a message
  a       → analyze    Measure cipher strength
  sq      → square     Show a Playfair key square
  h       → history    Show the operation history
  k       → key        Manage saved keys
  c       → config     Configuration management

Workflow aliases:
  ls      → history list

Examples:
  cipherlab enc -c caesar -k 3 HELLO      # Same as: cipherlab encrypt -c caesar -k 3 HELLO
  cipherlab d -c vigenere -k LEMON LXFOPV  # Same as: cipherlab decrypt ...
  cipherlab h --cipher hill               # Same as: cipherlab history --cipher hill`,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(aliasHelp)
}
