package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vaultenv/cipherlab/pkg/cipher"
)

// maxStdinBytes bounds how much piped input a command reads
const maxStdinBytes = 1 << 20

// isInteractive reports whether the command's stdin is a terminal
func isInteractive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readInput resolves the message to work on: --text, then a positional
// argument, then --file, then piped stdin, then an interactive prompt
func readInput(cmd *cobra.Command, text, file string, args []string) (string, error) {
	switch {
	case text != "":
		return text, nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	if isInteractive(cmd) {
		var message string
		prompt := &survey.Input{Message: "Message:"}
		if err := survey.AskOne(prompt, &message); err != nil {
			return "", err
		}
		return message, nil
	}

	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// promptKey asks for a key without echoing it. Outside a terminal it
// returns "" and leaves the empty key to be reported by the cipher.
func promptKey(cmd *cobra.Command, kind cipher.Kind) (string, error) {
	if !isInteractive(cmd) {
		return "", nil
	}

	help := ""
	if info, ok := cipher.Describe(kind); ok {
		help = fmt.Sprintf("%s key: %s", info.Title, info.KeyHint)
	}

	var key string
	prompt := &survey.Password{
		Message: fmt.Sprintf("Key (%s):", kind),
		Help:    help,
	}
	if err := survey.AskOne(prompt, &key); err != nil {
		return "", err
	}
	return key, nil
}

// confirm asks a yes/no question, answering no outside a terminal
func confirm(cmd *cobra.Command, message string) (bool, error) {
	if !isInteractive(cmd) {
		return false, nil
	}

	ok := false
	prompt := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// truncate shortens s to at most n runes for table display
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
