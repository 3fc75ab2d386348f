// SPDX-License-Identifier: MPL-2.0

package vmconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// FileExt is the extension of persisted configuration files.
	FileExt = ".json"
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid configuration name")
	// ErrInvalidRecord is the sentinel error wrapped by InvalidRecordError.
	ErrInvalidRecord = errors.New("invalid configuration record")
)

type (
	// Name identifies a stored configuration. It doubles as the file stem of
	// the on-disk JSON file, so it must not contain path separators or
	// traversal elements that would resolve outside the store directory.
	Name string

	// InvalidNameError is returned when a Name is empty or would escape the
	// store directory. It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Value Name
	}

	// Record is one saved, reusable QEMU invocation. Desc and QemuVersion are
	// pointers so that "absent" round-trips distinctly from "empty string"
	// across save/load cycles.
	Record struct {
		// QemuBin is the path or name of the QEMU binary to invoke.
		QemuBin string `json:"qemu_bin"`
		// Args is the argument vector, in order. Order is significant.
		Args []string `json:"args"`
		// Desc is an optional human description.
		Desc *string `json:"desc,omitempty"`
		// QemuVersion is the QEMU version detected when the record was saved.
		// Nil means detection failed or was skipped.
		QemuVersion *string `json:"qemu_version,omitempty"`
	}

	// InvalidRecordError is returned when a Record fails validation before a
	// save. It wraps ErrInvalidRecord for errors.Is() compatibility.
	InvalidRecordError struct {
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid configuration name %q (must be non-empty and must not contain path separators)", string(e.Value))
}

// Unwrap returns ErrInvalidName so callers can use errors.Is for programmatic detection.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid configuration record: %s", e.Reason)
}

// Unwrap returns ErrInvalidRecord so callers can use errors.Is for programmatic detection.
func (e *InvalidRecordError) Unwrap() error { return ErrInvalidRecord }

// IsValid returns whether the Name can safely be used as a file stem inside
// the store directory, and a list of validation errors if it cannot.
func (n Name) IsValid() (bool, []error) {
	s := string(n)
	if strings.TrimSpace(s) == "" ||
		strings.ContainsAny(s, `/\`) ||
		strings.ContainsRune(s, filepath.Separator) ||
		s == "." || s == ".." {
		return false, []error{&InvalidNameError{Value: n}}
	}
	return true, nil
}

// String returns the Name as a plain string.
func (n Name) String() string { return string(n) }

// IsValid returns whether the Record can be persisted, and a list of
// validation errors if it cannot.
func (r *Record) IsValid() (bool, []error) {
	if strings.TrimSpace(r.QemuBin) == "" {
		return false, []error{&InvalidRecordError{Reason: "qemu_bin must not be empty"}}
	}
	return true, nil
}

// Description returns the description and whether one is present.
func (r *Record) Description() (string, bool) {
	if r.Desc == nil {
		return "", false
	}
	return *r.Desc, true
}

// CommandLine returns the record rendered as a single shell-style command
// line, for display only.
func (r *Record) CommandLine() string {
	if len(r.Args) == 0 {
		return r.QemuBin
	}
	return r.QemuBin + " " + strings.Join(r.Args, " ")
}
