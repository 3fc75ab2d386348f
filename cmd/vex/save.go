// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"github.com/vexteam/vex/internal/vmconfig"
)

// newSaveCommand creates the `vex save` command.
func newSaveCommand(app *App) *cobra.Command {
	var (
		bin      string
		desc     string
		cmdline  string
		force    bool
		noDetect bool
	)

	cmd := &cobra.Command{
		Use:   "save <name> [-- qemu-args...]",
		Short: "Save a new QEMU configuration",
		Long: `Save a named QEMU configuration: the binary to launch, its argument
list, an optional description, and the QEMU version detected right now.

Arguments may contain ` + "`${VAR}`" + ` placeholders; they are substituted from the
environment at execution time, not at save time.

Examples:
  vex save my-vm -b qemu-system-x86_64 -- -m 2G -hda disk.img
  vex save my-vm -c 'qemu-system-x86_64 -m 2G -hda ${VM_DISK}'
  vex save my-vm -b qemu-system-x86_64 -d "Ubuntu test box" -- -m 4G`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := vmconfig.Name(args[0])
			qemuArgs := args[1:]

			if cmdline != "" {
				if bin != "" || len(qemuArgs) > 0 {
					return fmt.Errorf("--cmdline cannot be combined with --bin or positional arguments")
				}
				fields, err := shell.Fields(cmdline, nil)
				if err != nil {
					return fmt.Errorf("failed to parse command line: %w", err)
				}
				if len(fields) == 0 {
					return fmt.Errorf("--cmdline is empty")
				}
				bin = fields[0]
				qemuArgs = fields[1:]
			}
			if bin == "" {
				return fmt.Errorf("a QEMU binary is required (use --bin or --cmdline)")
			}

			store, _, err := app.store(cmd.Context())
			if err != nil {
				return err
			}

			if !force {
				exists, err := store.Exists(name)
				if err != nil {
					return err
				}
				if exists {
					ok, err := app.confirm(fmt.Sprintf("Configuration %q already exists, overwrite?", string(name)))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(app.stdout, "Save cancelled")
						return nil
					}
				}
			}

			record := vmconfig.Record{
				QemuBin: bin,
				Args:    qemuArgs,
			}
			if cmd.Flags().Changed("desc") {
				record.Desc = &desc
			}
			if !noDetect {
				if version, ok := app.prober.Version(cmd.Context(), bin); ok {
					record.QemuVersion = &version
				}
			}

			if err := store.Save(name, record); err != nil {
				return err
			}

			fmt.Fprintln(app.stdout, SuccessStyle.Render(fmt.Sprintf("Configuration %q saved", string(name))))
			if record.QemuVersion != nil {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("  QEMU version: %s", *record.QemuVersion)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bin, "bin", "b", "", "QEMU binary to launch")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "configuration description")
	cmd.Flags().StringVarP(&cmdline, "cmdline", "c", "", "whole command line (binary plus arguments, shell-quoted)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite without confirmation")
	cmd.Flags().BoolVar(&noDetect, "no-version-detect", false, "skip QEMU version detection")

	return cmd
}
