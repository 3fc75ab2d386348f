// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newCompletionCommand creates the `vex completion` command.
// Configuration names are completed dynamically by the subcommands that take
// one (exec, rm, print, rename) via their ValidArgsFunction.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for vex.

To enable shell completions, run one of the following commands:

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(vex completion bash)"

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(vex completion zsh)"

` + SubtitleStyle.Render("Fish:") + `
  vex completion fish > ~/.config/fish/completions/vex.fish

` + SubtitleStyle.Render("PowerShell:") + `
  vex completion powershell | Out-String | Invoke-Expression

Completions include saved configuration names for the commands that take
one (exec, rm, print, rename).`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeConfigNames offers stored configuration names (with their
// descriptions) as completions for the first positional argument.
func (a *App) completeConfigNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		// Only the first positional (the existing name) completes.
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	store, _, err := a.store(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	entries, err := store.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	completions := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := string(entry.Name)
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		if desc, ok := entry.Record.Description(); ok {
			completions = append(completions, name+"\t"+desc)
			continue
		}
		completions = append(completions, name)
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}
