// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/vexteam/vex/internal/config"
	"github.com/vexteam/vex/internal/qemu"
	"github.com/vexteam/vex/internal/tui"
	"github.com/vexteam/vex/internal/vmconfig"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and reach the store, the version prober, and the process
	// runner through it, so tests can swap any of them for fakes.
	App struct {
		config  config.Provider
		prober  qemu.Prober
		runner  qemu.Runner
		confirm vmconfig.ConfirmFunc
		stdout  io.Writer
		stderr  io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  config.Provider
		Prober  qemu.Prober
		Runner  qemu.Runner
		Confirm vmconfig.ConfirmFunc
		Stdout  io.Writer
		Stderr  io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Prober == nil {
		deps.Prober = qemu.NewProber()
	}
	if deps.Confirm == nil {
		stdout := deps.Stdout
		deps.Confirm = func(prompt string) (bool, error) {
			return tui.Confirm(tui.ConfirmOptions{Title: prompt, In: os.Stdin, Out: stdout})
		}
	}

	return &App{
		config:  deps.Config,
		prober:  deps.Prober,
		runner:  deps.Runner,
		confirm: deps.Confirm,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

// loadConfig loads the tool configuration, honoring the --config flag.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
}

// store resolves the configuration store from the tool configuration.
func (a *App) store(ctx context.Context) (*vmconfig.Store, *config.Config, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	dir, err := config.StoreDir(cfg)
	if err != nil {
		return nil, nil, err
	}
	return vmconfig.NewStore(dir), cfg, nil
}
