// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vexteam/vex/internal/vmconfig"
)

// newRemoveCommand creates the `vex rm` command.
func newRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a saved configuration",
		Long: `Remove a saved configuration. This is irreversible: the configuration
file is deleted permanently.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: app.completeConfigNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := vmconfig.Name(args[0])

			store, _, err := app.store(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Delete(name); err != nil {
				return err
			}

			fmt.Fprintln(app.stdout, SuccessStyle.Render(fmt.Sprintf("Configuration %q deleted", string(name))))
			return nil
		},
	}
}
