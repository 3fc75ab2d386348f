// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vexteam/vex/internal/vmconfig"
)

// newPrintCommand creates the `vex print` command.
func newPrintCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "print <name>",
		Short: "Print details of a configuration",
		Long: `Print the full details of a saved configuration: its description, QEMU
binary, indexed argument list, the version recorded at save time, and the
path of its file on disk.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: app.completeConfigNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := vmconfig.Name(args[0])

			store, _, err := app.store(cmd.Context())
			if err != nil {
				return err
			}
			record, err := store.Load(name)
			if err != nil {
				return err
			}
			path, err := store.Path(name)
			if err != nil {
				return err
			}

			out := app.stdout
			fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Configuration: %s", string(name))))
			fmt.Fprintln(out, SubtitleStyle.Render(strings.Repeat("=", 60)))
			fmt.Fprintln(out)

			if desc, ok := record.Description(); ok {
				fmt.Fprintln(out, "Description:")
				fmt.Fprintf(out, "  %s\n\n", desc)
			}

			fmt.Fprintln(out, "QEMU Binary:")
			fmt.Fprintf(out, "  %s\n\n", CmdStyle.Render(record.QemuBin))

			fmt.Fprintln(out, "Startup Arguments:")
			if len(record.Args) == 0 {
				fmt.Fprintln(out, "  (no arguments)")
			} else {
				for i, arg := range record.Args {
					fmt.Fprintf(out, "  [%d] %s\n", i, arg)
				}
			}
			fmt.Fprintln(out)

			if record.QemuVersion != nil {
				fmt.Fprintln(out, "Recorded QEMU Version:")
				fmt.Fprintf(out, "  %s\n\n", *record.QemuVersion)
			}

			fmt.Fprintln(out, "Full Command:")
			fmt.Fprintf(out, "  %s\n\n", CmdStyle.Render(record.CommandLine()))

			fmt.Fprintln(out, "Configuration File:")
			fmt.Fprintf(out, "  %s\n", path)
			return nil
		},
	}
}
