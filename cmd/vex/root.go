// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for vex.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vexteam/vex/internal/qemu"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
)

// NewRootCommand builds the `vex` command tree on top of app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vex",
		Short: "A minimalist QEMU command-line manager",
		Long: TitleStyle.Render("vex") + SubtitleStyle.Render(" - A minimalist QEMU command-line manager") + `

vex persists named QEMU invocations (binary path plus argument list) as
small JSON files and launches them by name, with ` + "`${VAR}`" + ` parameter
substitution from the environment and a one-flag GDB debug mode.

` + SubtitleStyle.Render("Examples:") + `
  vex save my-vm -b qemu-system-x86_64 -- -m 2G -hda disk.img
  vex exec my-vm            Launch the saved configuration
  vex exec -d my-vm         Launch frozen, waiting for a GDB connection
  vex list                  List all saved configurations
  vex rename old-vm new-vm  Rename a configuration`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default is $XDG_CONFIG_HOME/vex/config.toml)")

	rootCmd.AddCommand(newSaveCommand(app))
	rootCmd.AddCommand(newRenameCommand(app))
	rootCmd.AddCommand(newRemoveCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newPrintCommand(app))
	rootCmd.AddCommand(newExecCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Code > 0 {
			os.Exit(int(exitErr.Code))
		}
		var execErr *qemu.ExecError
		if errors.As(err, &execErr) && execErr.Code > 0 {
			os.Exit(int(execErr.Code))
		}
		os.Exit(1)
	}
}
