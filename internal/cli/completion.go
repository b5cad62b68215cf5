package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand wires cobra's shell completion generators.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell. The script completes
wordgrove subcommands and flags.

Bash:
  $ source <(wordgrove completion bash)

  # To persist across sessions:
  $ wordgrove completion bash > /etc/bash_completion.d/wordgrove

Zsh:
  $ wordgrove completion zsh > "${fpath[1]}/_wordgrove"

  # compinit must be enabled; if it is not:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

Fish:
  $ wordgrove completion fish | source

  # To persist across sessions:
  $ wordgrove completion fish > ~/.config/fish/completions/wordgrove.fish

PowerShell:
  PS> wordgrove completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
