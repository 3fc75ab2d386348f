// SPDX-License-Identifier: MPL-2.0

package qemu

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrExecFailed is the sentinel error wrapped by ExecError.
var ErrExecFailed = errors.New("qemu execution failed")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems. The zero value (0)
	// means success; CodeUnknown means the process terminated without a code.
	ExitCode int

	// ExecError is returned when QEMU was spawned successfully but exited
	// with a non-zero status. It wraps ErrExecFailed for errors.Is()
	// compatibility.
	ExecError struct {
		Code ExitCode
	}
)

// CodeUnknown is the sentinel exit code for abnormal termination (the
// process was signaled and reported no numeric code).
const CodeUnknown ExitCode = -1

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("QEMU execution failed with exit code: %s", e.Code)
}

// Unwrap returns ErrExecFailed so callers can use errors.Is for programmatic detection.
func (e *ExecError) Unwrap() error { return ErrExecFailed }

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
