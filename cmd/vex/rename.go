// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vexteam/vex/internal/vmconfig"
)

// newRenameCommand creates the `vex rename` command.
func newRenameCommand(app *App) *cobra.Command {
	var (
		desc  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a saved configuration",
		Long: `Rename a saved configuration, optionally updating its description.

The configuration is written under the new name before the old file is
removed, so an interrupted rename leaves it recoverable under its old name.
When the new name is already taken, a confirmation prompt (defaulting to
"no") guards the overwrite unless --force is given.

Examples:
  vex rename ubuntu-20 ubuntu-22
  vex rename old-vm new-vm -d "Updated system image"`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: app.completeConfigNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName := vmconfig.Name(args[0])
			newName := vmconfig.Name(args[1])

			store, _, err := app.store(cmd.Context())
			if err != nil {
				return err
			}

			var descOverride *string
			if cmd.Flags().Changed("desc") {
				descOverride = &desc
			}

			record, err := store.Rename(cmd.Context(), oldName, newName, descOverride, force, app.confirm)
			if err != nil {
				if errors.Is(err, vmconfig.ErrRenameCancelled) {
					fmt.Fprintln(app.stdout, "Rename cancelled")
					return nil
				}
				return err
			}

			msg := fmt.Sprintf("Configuration %q renamed to %q", string(oldName), string(newName))
			if d, ok := record.Description(); ok {
				msg = fmt.Sprintf("Configuration %q renamed to %q with description %q", string(oldName), string(newName), d)
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "update the configuration description")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "rename without confirmation")

	return cmd
}
