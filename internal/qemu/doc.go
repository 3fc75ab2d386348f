// SPDX-License-Identifier: MPL-2.0

// Package qemu turns a stored configuration into a running QEMU process.
// It owns parameter substitution over stored argument lists, version probing
// of the QEMU binary, and the launch flow that blocks until the child exits
// and reports its status.
package qemu
