// SPDX-License-Identifier: MPL-2.0

// Package config loads vex's own settings (store directory override, GDB
// debug port, UI defaults) from a TOML file in the platform config
// directory. Stored QEMU configurations live in package vmconfig; this
// package only decides where that store is rooted and how the tool behaves.
package config
