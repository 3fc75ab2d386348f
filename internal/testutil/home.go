// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared helpers for tests.
package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform home directory variable at dir for the
// duration of the test, so config-dir resolution can be exercised without
// touching the real user profile.
//
// Platform handling:
//   - Windows: USERPROFILE (plus APPDATA, which config resolution prefers)
//   - Linux/macOS: HOME
func SetHomeDir(t *testing.T, dir string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
		t.Setenv("APPDATA", dir)
		return
	}
	t.Setenv("HOME", dir)
}
