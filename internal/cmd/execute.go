package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaultenv/cipherlab/internal/config"
	"github.com/vaultenv/cipherlab/internal/ui"
)

// BuildInfo contains version information passed from main
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	BuiltBy   string
}

// ConfigKey is the context key for storing configuration
type configKey struct{}

// skipConfig marks commands that must run without a valid configuration
const skipConfig = "skip-config"

var (
	// Global flags that affect all commands
	cfgFile string
	noColor bool
	verbose bool

	// Build information
	buildInfo BuildInfo

	// Global configuration instance
	globalConfig *config.Config
)

const rootLong = `cipherlab - classical ciphers and how strong they look

cipherlab encrypts and decrypts text with the Caesar, Hill, Vigenère and
Playfair ciphers, plus a passphrase-keyed block cipher, and measures the
result with Shannon entropy and the avalanche effect.

Every successful operation is kept in a local history you can list,
summarize and export.`

// Execute runs the root command
func Execute(info BuildInfo) error {
	buildInfo = info

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		// Handle errors with helpful messages
		handleError(err)
		return err
	}

	return nil
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cipherlab",
		Short: "🔐 Classical cipher toolkit with strength metrics",
		Long:  rootLong,

		// PersistentPreRunE executes before any subcommand
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Set UI output to command's output
			ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

			// A local .env may set CIPHERLAB_* variables; real environment wins
			_ = godotenv.Load()

			// Configure color output based on flags and environment
			configureColorOutput()

			initializeConfig()

			if skipsConfig(cmd) {
				return nil
			}

			cfg, err := loadProjectConfig()
			if err != nil {
				return ui.ErrorWithHelp{
					Message:    "Failed to load configuration",
					Suggestion: "Run 'cipherlab config init --force' to write a fresh configuration",
					Code:       "INVALID_CONFIG",
					Err:        err,
				}
			}
			globalConfig = cfg

			ui.SetEmoji(cfg.UI.Emoji)
			ui.SetProgress(cfg.UI.Progress)
			if !cfg.UI.Color {
				color.NoColor = true
			}

			// Store config in command context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(ctx)

			if file := cfg.File(); file != "" {
				ui.Debug("Using config file: %s", file)
			}
			ui.Debug("cipherlab %s (commit: %s, built: %s)",
				buildInfo.Version, buildInfo.Commit, buildInfo.BuildTime)
			return nil
		},

		// Don't show errors twice
		SilenceErrors: true,

		// Don't show usage on errors automatically
		SilenceUsage: true,
	}

	// Define global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: nearest .cipherlab/config.yaml)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose output")

	// Bind flags to viper for configuration management
	viper.BindPFlag("no_color", cmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(
		newEncryptCommand(),
		newDecryptCommand(),
		newAnalyzeCommand(),
		newStatsCommand(),
		newSquareCommand(),
		newCiphersCommand(),
		newHistoryCommand(),
		newKeyCommand(),
		newConfigCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	// Add command aliases for better UX
	addAliases(cmd)

	// Add alias help
	AddShortHelp(cmd)

	return cmd
}

func configureColorOutput() {
	// Respect user preferences and environment
	if noColor || viper.GetBool("no_color") || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
		return
	}

	// Detect if we're in a CI environment
	if os.Getenv("CI") != "" {
		color.NoColor = true
	}
}

func initializeConfig() {
	// CIPHERLAB_HISTORY_BACKEND overrides history.backend, and so on
	viper.SetEnvPrefix("CIPHERLAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func handleError(err error) {
	// This is where we make errors helpful, not frustrating
	ui.HandleError(err)
}

// loadProjectConfig loads the project configuration and applies environment
// overrides on top of it
func loadProjectConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		// Walks up the directory tree, defaults when nothing is found
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies CIPHERLAB_* environment settings into cfg
func applyOverrides(cfg *config.Config) {
	texts := map[string]*string{
		"defaults.cipher":        &cfg.Defaults.Cipher,
		"defaults.output_format": &cfg.Defaults.OutputFormat,
		"block.algorithm":        &cfg.Block.Algorithm,
		"history.backend":        &cfg.History.Backend,
		"history.path":           &cfg.History.Path,
		"keyring.service":        &cfg.Keyring.Service,
		"keyring.file_dir":       &cfg.Keyring.FileDir,
	}
	for key, target := range texts {
		if v := viper.GetString(key); v != "" {
			*target = v
		}
	}

	bools := map[string]*bool{
		"history.enabled": &cfg.History.Enabled,
		"ui.emoji":        &cfg.UI.Emoji,
		"ui.progress":     &cfg.UI.Progress,
	}
	for key, target := range bools {
		if viper.IsSet(key) {
			*target = viper.GetBool(key)
		}
	}

	if viper.IsSet("history.limit") {
		cfg.History.Limit = viper.GetInt("history.limit")
	}
}

// skipsConfig reports whether cmd or one of its parents is marked skipConfig
func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfig] == "true" {
			return true
		}
	}
	return false
}

// GetConfig retrieves the configuration from the command context
func GetConfig(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}

	if globalConfig != nil {
		return globalConfig
	}
	return config.DefaultConfig()
}
