// SPDX-License-Identifier: MPL-2.0

// Package vmconfig defines the persisted QEMU configuration record and the
// file-backed store that owns its on-disk representation. One configuration
// is one pretty-printed JSON file named <name>.json inside the store
// directory; the store is the only component that reads or writes these
// files.
package vmconfig
