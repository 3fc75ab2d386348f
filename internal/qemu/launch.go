// SPDX-License-Identifier: MPL-2.0

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vexteam/vex/internal/vmconfig"
)

// DefaultGDBPort is the port the `-s` shorthand listens on. When the
// configured port matches it, debug mode appends the classic `-s -S` pair;
// any other port expands to the explicit `-gdb tcp::<port> -S` form.
const DefaultGDBPort = 1234

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Faint(true)
)

type (
	// Runner spawns a process with inherited standard streams and blocks
	// until it exits. It returns the exit code on normal termination,
	// CodeUnknown when the process reported no code (signaled), and a
	// non-nil error only when spawning itself failed.
	Runner interface {
		Run(ctx context.Context, bin string, args []string) (ExitCode, error)
	}

	// Options carries per-launch flags from the CLI.
	Options struct {
		// Debug appends the GDB stub arguments and freezes the CPU at boot.
		Debug bool
		// Full prints the resolved binary and the effective argument list in
		// the startup banner.
		Full bool
	}

	// Deps defines the injection points for building a Launcher. Nil fields
	// are replaced with production defaults by NewLauncher; tests supply
	// fakes to isolate the launch flow from real processes.
	Deps struct {
		Store   *vmconfig.Store
		Prober  Prober
		Runner  Runner
		Logger  *log.Logger
		Stdout  io.Writer
		GDBPort int
	}

	// Launcher is the execution engine: it loads a named configuration,
	// performs the advisory version-drift check, applies parameter
	// substitution and debug flag injection, and launches QEMU.
	Launcher struct {
		store   *vmconfig.Store
		prober  Prober
		runner  Runner
		logger  *log.Logger
		stdout  io.Writer
		gdbPort int
	}

	execRunner struct{}
)

// Run implements Runner using os/exec with inherited stdio.
func (r *execRunner) Run(ctx context.Context, bin string, args []string) (ExitCode, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ProcessState.ExitCode() is -1 when the process was signaled.
			return ExitCode(exitErr.ExitCode()), nil
		}
		return CodeUnknown, fmt.Errorf("failed to execute QEMU %s: %w", bin, err)
	}
	return 0, nil
}

// NewLauncher creates a Launcher with defaults for omitted dependencies.
func NewLauncher(deps Deps) *Launcher {
	if deps.Prober == nil {
		deps.Prober = NewProber()
	}
	if deps.Runner == nil {
		deps.Runner = &execRunner{}
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "vex",
		})
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.GDBPort == 0 {
		deps.GDBPort = DefaultGDBPort
	}

	return &Launcher{
		store:   deps.Store,
		prober:  deps.Prober,
		runner:  deps.Runner,
		logger:  deps.Logger,
		stdout:  deps.Stdout,
		gdbPort: deps.GDBPort,
	}
}

// Launch runs the named configuration and blocks until QEMU exits. A
// non-zero exit status is reported as an ExecError carrying the code; a
// failed spawn is reported as an error naming the binary. Neither is ever
// retried.
func (l *Launcher) Launch(ctx context.Context, name vmconfig.Name, opts Options) error {
	record, err := l.store.Load(name)
	if err != nil {
		return err
	}

	l.checkVersionDrift(ctx, record)

	execArgs := Substitute(record.Args)
	if opts.Debug {
		execArgs = append(execArgs, DebugArgs(l.gdbPort)...)
	}

	l.printBanner(name, record, execArgs, opts)

	code, err := l.runner.Run(ctx, record.QemuBin, execArgs)
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return &ExecError{Code: code}
	}

	return nil
}

// DebugArgs returns the argument suffix that enables the GDB stub and
// freezes the CPU at startup.
func DebugArgs(port int) []string {
	if port == 0 || port == DefaultGDBPort {
		return []string{"-s", "-S"}
	}
	return []string{"-gdb", fmt.Sprintf("tcp::%d", port), "-S"}
}

// checkVersionDrift warns when the recorded QEMU version differs from the
// installed one. The check is advisory only: it never blocks the launch.
func (l *Launcher) checkVersionDrift(ctx context.Context, record vmconfig.Record) {
	if record.QemuVersion == nil {
		return
	}

	current, ok := l.prober.Version(ctx, record.QemuBin)
	if !ok {
		l.logger.Warn("could not detect the current QEMU version")
		return
	}
	if Drift(*record.QemuVersion, current) {
		l.logger.Warn("QEMU version mismatch, some features might not work as expected",
			"saved", *record.QemuVersion,
			"current", current)
	}
}

// printBanner emits the human-readable startup message.
func (l *Launcher) printBanner(name vmconfig.Name, record vmconfig.Record, execArgs []string, opts Options) {
	header := fmt.Sprintf("Starting configuration %q", string(name))
	if desc, ok := record.Description(); ok {
		header = fmt.Sprintf("Starting configuration %q (%s)", string(name), desc)
	}
	fmt.Fprintln(l.stdout, bannerStyle.Render(header))

	if opts.Full {
		fmt.Fprintln(l.stdout, detailStyle.Render(fmt.Sprintf("  QEMU: %s", record.QemuBin)))
		fmt.Fprintln(l.stdout, detailStyle.Render(fmt.Sprintf("  Args: %q", execArgs)))
	}
	if opts.Debug {
		fmt.Fprintln(l.stdout, detailStyle.Render("  Mode: DEBUG"))
		fmt.Fprintln(l.stdout, detailStyle.Render(fmt.Sprintf("  GDB server: localhost:%d", l.gdbPort)))
		fmt.Fprintln(l.stdout, detailStyle.Render(fmt.Sprintf("  Connect with: gdb -ex 'target remote localhost:%d'", l.gdbPort)))
	}
}
