// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newListCommand creates the `vex list` command.
func newListCommand(app *App) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all saved configurations",
		Long: `List all saved configurations with their descriptions, binaries, and
argument lists. Corrupt configuration files are skipped, not fatal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := app.store(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(app.stdout, "No configurations saved yet.")
				return nil
			}

			if asTable {
				t := table.NewWriter()
				t.SetOutputMirror(app.stdout)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Name", "Description", "QEMU", "Args"})
				for _, entry := range entries {
					desc, _ := entry.Record.Description()
					t.AppendRow(table.Row{
						string(entry.Name),
						desc,
						entry.Record.QemuBin,
						strings.Join(entry.Record.Args, " "),
					})
				}
				t.Render()
				return nil
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Saved configurations:"))
			for _, entry := range entries {
				desc, ok := entry.Record.Description()
				if !ok {
					desc = "(no description)"
				}
				fmt.Fprintf(app.stdout, "  %s - %s\n", CmdStyle.Render(string(entry.Name)), desc)
				fmt.Fprintf(app.stdout, "    QEMU: %s\n", entry.Record.QemuBin)
				fmt.Fprintf(app.stdout, "    Args: %q\n", entry.Record.Args)
				fmt.Fprintln(app.stdout)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asTable, "table", "t", false, "render as a table")

	return cmd
}
