// SPDX-License-Identifier: MPL-2.0

// vex is a minimalist QEMU command-line manager: it persists named QEMU
// invocations as JSON files and launches them by name.
package main

import cmd "github.com/vexteam/vex/cmd/vex"

func main() {
	cmd.Execute()
}
