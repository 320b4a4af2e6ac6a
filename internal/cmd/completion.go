package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/encryption"
)

func newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for cipherlab.

To load completions in your current shell session:

  Bash:
    $ source <(cipherlab completion bash)

  Zsh:
    $ source <(cipherlab completion zsh)

  Fish:
    $ cipherlab completion fish | source

  PowerShell:
    PS> cipherlab completion powershell | Out-String | Invoke-Expression

To load completions for every new session, execute once:

  Bash:
    $ cipherlab completion bash > /etc/bash_completion.d/cipherlab

  Zsh:
    $ cipherlab completion zsh > "${fpath[1]}/_cipherlab"

  Fish:
    $ cipherlab completion fish > ~/.config/fish/completions/cipherlab.fish

  PowerShell:
    PS> cipherlab completion powershell > $PROFILE`,

		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{skipConfig: "true"},
		RunE:                  runCompletion,
	}

	return cmd
}

func runCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return cmd.Root().GenBashCompletion(out)
	case "zsh":
		return cmd.Root().GenZshCompletion(out)
	case "fish":
		return cmd.Root().GenFishCompletion(out, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell: %s", args[0])
	}
}

// cipherCompletion completes cipher names
func cipherCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, info := range cipher.Catalog() {
		name := info.Kind.String()
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			matches = append(matches, name+"\t"+info.Title)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// algorithmCompletion completes block algorithm names
func algorithmCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, name := range encryption.Algorithms {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// keyNameCompletion completes the names of saved keys
func keyNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	keys, err := openKeys(GetConfig(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names, err := keys.Names()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var matches []string
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
