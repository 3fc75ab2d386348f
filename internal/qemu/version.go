// SPDX-License-Identifier: MPL-2.0

package qemu

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern extracts the version token from `qemu-system-* --version`
// output, e.g. "QEMU emulator version 9.0.2 (Debian 1:9.0.2+ds-2)".
var versionPattern = regexp.MustCompile(`version\s+(\d+(?:\.\d+)+)`)

type (
	// Prober determines the version reported by a QEMU binary. A probe never
	// fails hard: any error reads as "version unknown".
	Prober interface {
		Version(ctx context.Context, bin string) (string, bool)
	}

	execProber struct{}
)

// NewProber returns a Prober that runs `<bin> --version` and parses the
// first line of its output.
func NewProber() Prober {
	return &execProber{}
}

// Version implements Prober.
func (p *execProber) Version(ctx context.Context, bin string) (string, bool) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", false
	}
	return ParseVersion(string(out))
}

// ParseVersion extracts the version token from version-subcommand output.
func ParseVersion(output string) (string, bool) {
	line, _, _ := strings.Cut(output, "\n")
	m := versionPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Drift reports whether the version recorded at save time differs from the
// currently installed one. Both sides are compared semantically when they
// parse as semantic versions (so "9.0" equals "9.0.0"), byte-for-byte
// otherwise.
func Drift(saved, current string) bool {
	sv, errSaved := semver.NewVersion(saved)
	cv, errCurrent := semver.NewVersion(current)
	if errSaved == nil && errCurrent == nil {
		return !sv.Equal(cv)
	}
	return saved != current
}
