// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGDBPort is the sentinel error wrapped by InvalidGDBPortError.
	ErrInvalidGDBPort = errors.New("invalid gdb port")
	// ErrInvalidStoreDirPath is the sentinel error wrapped by InvalidStoreDirPathError.
	ErrInvalidStoreDirPath = errors.New("invalid store dir path")
)

type (
	// GDBPort is the TCP port the QEMU GDB stub listens on in debug mode.
	// Valid ports are 1-65535.
	GDBPort int

	// InvalidGDBPortError is returned when a GDBPort value is outside the
	// valid range. It wraps ErrInvalidGDBPort for errors.Is() compatibility.
	InvalidGDBPortError struct {
		Value GDBPort
	}

	// StoreDirPath is a filesystem path to the configuration store directory.
	// The zero value ("") is valid and means "use the default store location".
	// Non-zero values must not be whitespace-only.
	StoreDirPath string

	// InvalidStoreDirPathError is returned when a StoreDirPath value is
	// non-empty but whitespace-only. It wraps ErrInvalidStoreDirPath for
	// errors.Is() compatibility.
	InvalidStoreDirPathError struct {
		Value StoreDirPath
	}

	// DebugConfig holds debug-mode settings.
	DebugConfig struct {
		// GDBPort is the debugger-attach port. The default (1234) keeps the
		// classic `-s -S` argument pair; other ports expand to the explicit
		// `-gdb tcp::<port>` form.
		GDBPort GDBPort `mapstructure:"gdb_port" toml:"gdb_port"`
	}

	// UIConfig holds user interface settings.
	UIConfig struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}

	// Config is the root vex configuration.
	Config struct {
		// StoreDir overrides the directory holding saved configurations.
		StoreDir StoreDirPath `mapstructure:"store_dir" toml:"store_dir"`
		// Debug holds debug-mode settings.
		Debug DebugConfig `mapstructure:"debug" toml:"debug"`
		// UI holds user interface settings.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidGDBPortError) Error() string {
	return fmt.Sprintf("invalid gdb port %d (must be in range 1-65535)", e.Value)
}

// Unwrap returns ErrInvalidGDBPort so callers can use errors.Is for programmatic detection.
func (e *InvalidGDBPortError) Unwrap() error { return ErrInvalidGDBPort }

// Error implements the error interface.
func (e *InvalidStoreDirPathError) Error() string {
	return fmt.Sprintf("invalid store dir path %q (must not be whitespace-only)", string(e.Value))
}

// Unwrap returns ErrInvalidStoreDirPath so callers can use errors.Is for programmatic detection.
func (e *InvalidStoreDirPathError) Unwrap() error { return ErrInvalidStoreDirPath }

// IsValid returns whether the GDBPort is in the valid range (1-65535), and a
// list of validation errors if it is not.
func (p GDBPort) IsValid() (bool, []error) {
	if p < 1 || p > 65535 {
		return false, []error{&InvalidGDBPortError{Value: p}}
	}
	return true, nil
}

// IsValid returns whether the StoreDirPath is empty or a usable path, and a
// list of validation errors if it is not.
func (p StoreDirPath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidStoreDirPathError{Value: p}}
	}
	return true, nil
}

// IsValid returns whether the whole Config is valid, collecting the
// validation errors of its fields.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.StoreDir.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Debug.GDBPort.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	return len(errs) == 0, errs
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug: DebugConfig{GDBPort: 1234},
		UI:    UIConfig{Verbose: false},
	}
}
