// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vexteam/vex/internal/qemu"
	"github.com/vexteam/vex/internal/vmconfig"
)

// newExecCommand creates the `vex exec` command.
func newExecCommand(app *App) *cobra.Command {
	var (
		debug bool
		full  bool
	)

	cmd := &cobra.Command{
		Use:   "exec <name>",
		Short: "Execute a saved configuration",
		Long: `Execute a saved configuration: substitute ` + "`${VAR}`" + ` placeholders in its
argument list from the environment, then launch QEMU and block until it
exits. QEMU's exit status becomes vex's exit status.

If the configuration recorded a QEMU version at save time, the currently
installed version is probed and a mismatch is reported as a warning; the
launch proceeds either way.

Examples:
  vex exec my-vm            Run a VM normally
  vex exec -d my-vm         Freeze the CPU at boot and wait for GDB
  vex exec -f my-vm         Show the full command line before starting`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: app.completeConfigNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := vmconfig.Name(args[0])

			store, cfg, err := app.store(cmd.Context())
			if err != nil {
				return err
			}

			logger := log.NewWithOptions(app.stderr, log.Options{Prefix: "vex"})
			if verbose || cfg.UI.Verbose {
				logger.SetLevel(log.DebugLevel)
			}

			launcher := qemu.NewLauncher(qemu.Deps{
				Store:   store,
				Prober:  app.prober,
				Runner:  app.runner,
				Logger:  logger,
				Stdout:  app.stdout,
				GDBPort: int(cfg.Debug.GDBPort),
			})

			err = launcher.Launch(cmd.Context(), name, qemu.Options{Debug: debug, Full: full})
			if err == nil {
				return nil
			}

			var notFound *vmconfig.NotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("%w; create it first with %s", err, CmdStyle.Render("vex save"))
			}
			var execErr *qemu.ExecError
			if errors.As(err, &execErr) {
				fmt.Fprintln(app.stderr, ErrorStyle.Render(execErr.Error()))
				return &ExitError{Code: execErr.Code, Err: execErr}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "start QEMU with the GDB stub enabled and the CPU frozen")
	cmd.Flags().BoolVarP(&full, "full", "f", false, "show the full QEMU command line before starting")

	return cmd
}
