package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vaultenv/cipherlab/internal/config"
	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/cipher"
)

// cryptOptions holds the flags shared by encrypt, decrypt and analyze
type cryptOptions struct {
	cipherName string
	key        string
	keyRef     string
	text       string
	file       string
	algorithm  string
	format     string
	noHistory  bool
}

func (o *cryptOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.cipherName, "cipher", "c", "",
		"cipher to use: caesar, hill, vigenere, playfair or block (default from config)")
	cmd.Flags().StringVarP(&o.key, "key", "k", "",
		"cipher key (prompted when omitted on a terminal)")
	cmd.Flags().StringVar(&o.keyRef, "key-ref", "",
		"use a key saved with 'cipherlab key save'")
	cmd.Flags().StringVarP(&o.text, "text", "t", "",
		"message to process")
	cmd.Flags().StringVarP(&o.file, "file", "f", "",
		"read the message from a file")
	cmd.Flags().StringVar(&o.algorithm, "algorithm", "",
		"block algorithm: des-cbc, aes-gcm-256 or chacha20-poly1305 (default from config)")

	cmd.RegisterFlagCompletionFunc("cipher", cipherCompletion)
	cmd.RegisterFlagCompletionFunc("key-ref", keyNameCompletion)
	cmd.RegisterFlagCompletionFunc("algorithm", algorithmCompletion)
}

func newEncryptCommand() *cobra.Command {
	return newCryptCommand(cipher.Encrypt)
}

func newDecryptCommand() *cobra.Command {
	return newCryptCommand(cipher.Decrypt)
}

func newCryptCommand(dir cipher.Direction) *cobra.Command {
	opts := &cryptOptions{}

	use, short, example := "encrypt [TEXT]", "Encrypt a message", `  # Caesar shift of 3
  cipherlab encrypt --cipher caesar --key 3 "HELLO WORLD"

  # Hill cipher with a 2x2 key matrix
  cipherlab encrypt -c hill -k "3 3 2 5" --text "HELP"

  # Block cipher, message from a pipe
  echo "meet at noon" | cipherlab encrypt -c block -k mysecretkey

  # Use a saved key
  cipherlab encrypt --key-ref work "ATTACK AT DAWN"`
	if dir == cipher.Decrypt {
		use, short, example = "decrypt [TEXT]", "Decrypt a message", `  # Undo a Caesar shift of 3
  cipherlab decrypt --cipher caesar --key 3 "KHOOR ZRUOG"

  # Playfair with a keyword
  cipherlab decrypt -c playfair -k MONARCHY "GATLMZCLRQXA"

  # Block cipher ciphertext from a file
  cipherlab decrypt -c block -k mysecretkey --file secret.txt`
	}

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Long: short + `.

The message comes from --text, the arguments, --file or stdin, in that
order. Hill and Playfair work on letters only, so decrypting gives back
the normalized text (uppercase, padded) rather than the original.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrypt(cmd, dir, opts, args)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "output-format", "o", "",
		"output format: text, json or yaml (default from config)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false,
		"do not record this operation")

	return cmd
}

func runCrypt(cmd *cobra.Command, dir cipher.Direction, opts *cryptOptions, args []string) error {
	cfg := GetConfig(cmd)

	text, err := readInput(cmd, opts.text, opts.file, args)
	if err != nil {
		return err
	}

	kind, rawKey, err := resolveKey(cmd, cfg, opts)
	if err != nil {
		return err
	}

	key, err := cipher.ParseKey(kind, rawKey)
	if err != nil {
		return err
	}

	sess, err := openSession(cfg, opts.algorithm, !opts.noHistory)
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := process(cmd, sess, dir, kind, text, key)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cfg.Defaults.OutputFormat
	}
	algorithm := ""
	if kind == cipher.BlockCipher {
		algorithm = sess.algorithm
	}
	return writeResult(cmd.OutOrStdout(), format, res, algorithm)
}

// process runs one engine call, behind a spinner for the block cipher
func process(cmd *cobra.Command, sess *session, dir cipher.Direction, kind cipher.Kind, text string, key cipher.Key) (cipher.Result, error) {
	var res cipher.Result
	run := func() error {
		var err error
		res, err = sess.engine.Process(cmd.Context(), dir, kind, text, key)
		return err
	}

	if kind != cipher.BlockCipher {
		return res, run()
	}

	verb := "Encrypting"
	if dir == cipher.Decrypt {
		verb = "Decrypting"
	}
	err := ui.StartProgress(fmt.Sprintf("%s with %s", verb, sess.algorithm), run)
	return res, err
}

// resolveKey works out the cipher and the raw key text from --key-ref,
// --cipher and --key, prompting for the key when it is missing
func resolveKey(cmd *cobra.Command, cfg *config.Config, opts *cryptOptions) (cipher.Kind, string, error) {
	if opts.keyRef != "" {
		if opts.key != "" {
			return 0, "", fmt.Errorf("--key and --key-ref cannot be used together")
		}

		keys, err := openKeys(cfg)
		if err != nil {
			return 0, "", err
		}
		named, err := keys.Load(opts.keyRef)
		if err != nil {
			return 0, "", err
		}

		if opts.cipherName != "" {
			kind, err := parseCipher(opts.cipherName)
			if err != nil {
				return 0, "", err
			}
			if kind != named.Cipher {
				return 0, "", fmt.Errorf("saved key %q is a %s key, not %s", named.Name, named.Cipher, kind)
			}
		}
		ui.Debug("Using saved %s key %q", named.Cipher, named.Name)
		return named.Cipher, named.Value, nil
	}

	name := opts.cipherName
	if name == "" {
		name = cfg.Defaults.Cipher
	}
	kind, err := parseCipher(name)
	if err != nil {
		return 0, "", err
	}

	raw := opts.key
	if raw == "" {
		if raw, err = promptKey(cmd, kind); err != nil {
			return 0, "", err
		}
	}
	return kind, raw, nil
}

func parseCipher(name string) (cipher.Kind, error) {
	kind, err := cipher.ParseKind(name)
	if err != nil {
		return 0, ui.NewError("UNKNOWN_CIPHER", name)
	}
	return kind, nil
}

// resultView is the json/yaml shape of a result
type resultView struct {
	Cipher    cipher.Kind      `json:"cipher" yaml:"cipher"`
	Direction cipher.Direction `json:"direction" yaml:"direction"`
	Algorithm string           `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Input     string           `json:"input" yaml:"input"`
	Output    string           `json:"output" yaml:"output"`
}

func writeResult(w io.Writer, format string, res cipher.Result, algorithm string) error {
	view := resultView{
		Cipher:    res.Kind,
		Direction: res.Direction,
		Algorithm: algorithm,
		Input:     res.Input,
		Output:    res.Output,
	}

	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, res.Output)
		return err
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(view)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(view)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
