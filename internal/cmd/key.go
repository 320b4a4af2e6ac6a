package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultenv/cipherlab/internal/config"
	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/keystore"
)

// testKeystore replaces the OS keyring in tests
var testKeystore keystore.Keystore

// openKeys opens the named key store configured in cfg
func openKeys(cfg *config.Config) (*keystore.Keys, error) {
	if testKeystore != nil {
		return keystore.NewKeys(testKeystore, cfg.Keyring.Service), nil
	}

	dir, err := cfg.KeyringDir()
	if err != nil {
		return nil, err
	}

	store, err := keystore.NewOSKeystore(keystore.Options{
		Service:  cfg.Keyring.Service,
		Backends: cfg.Keyring.Backends,
		FileDir:  dir,
		Password: os.Getenv("CIPHERLAB_KEYRING_PASSWORD"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keystore: %w", err)
	}
	ui.Debug("Using %s keyring", store.GetBackend())

	return keystore.NewKeys(store, cfg.Keyring.Service), nil
}

func newKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Save cipher keys under a name",
		Long: `Save cipher keys in the system keyring and use them with --key-ref.

A saved key remembers its cipher, so '--key-ref NAME' alone picks both
the cipher and the key. Keys are validated before they are saved.`,
		Example: `  # Save a Hill key
  cipherlab key save classroom --cipher hill --key "3 3 2 5"

  # Use it
  cipherlab encrypt --key-ref classroom "HELP"

  # List and delete
  cipherlab key list
  cipherlab key delete classroom`,
	}

	cmd.AddCommand(newKeySaveCommand(), newKeyListCommand(), newKeyDeleteCommand())

	return cmd
}

func newKeySaveCommand() *cobra.Command {
	var cipherName, rawKey string

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Validate and save a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd)

			if cipherName == "" {
				cipherName = cfg.Defaults.Cipher
			}
			kind, err := parseCipher(cipherName)
			if err != nil {
				return err
			}

			if rawKey == "" {
				if rawKey, err = promptKey(cmd, kind); err != nil {
					return err
				}
			}

			keys, err := openKeys(cfg)
			if err != nil {
				return err
			}
			if err := keys.Save(args[0], kind, rawKey); err != nil {
				return err
			}

			ui.Success("Saved %s key %q", kind, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&cipherName, "cipher", "c", "", "cipher the key is for (default from config)")
	cmd.Flags().StringVarP(&rawKey, "key", "k", "", "key to save (prompted when omitted on a terminal)")
	cmd.RegisterFlagCompletionFunc("cipher", cipherCompletion)

	return cmd
}

func newKeyListCommand() *cobra.Command {
	var showValues bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := openKeys(GetConfig(cmd))
			if err != nil {
				return err
			}

			names, err := keys.Names()
			if err != nil {
				return fmt.Errorf("failed to list keys: %w", err)
			}
			if len(names) == 0 {
				ui.Info("No saved keys")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				named, err := keys.Load(name)
				if err != nil {
					ui.Warning("Skipping %s: %v", name, err)
					continue
				}
				value := "********"
				if showValues {
					value = named.Value
				}
				rows = append(rows, []string{name, named.Cipher.String(), value})
			}

			ui.Table([]string{"NAME", "CIPHER", "KEY"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showValues, "show-values", false, "print the key values")

	return cmd
}

func newKeyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete NAME",
		Aliases:           []string{"rm"},
		Short:             "Delete a saved key",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: keyNameCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := openKeys(GetConfig(cmd))
			if err != nil {
				return err
			}

			// Deleting a missing key is not an error for the keyring, so check first
			if _, err := keys.Load(args[0]); err != nil {
				return err
			}
			if err := keys.Remove(args[0]); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}

			ui.Success("Deleted key %q", args[0])
			return nil
		},
	}
}
