// SPDX-License-Identifier: MPL-2.0

// Package tui contains the interactive prompt primitives used by the CLI.
package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var promptStyle = lipgloss.NewStyle().Bold(true)

// ConfirmOptions configures a Confirm prompt.
type ConfirmOptions struct {
	// Title is the question to display.
	Title string
	// In is the input stream. Tests inject a strings.Reader.
	In io.Reader
	// Out is where the prompt is written.
	Out io.Writer
}

// Confirm presents a yes/no prompt defaulting to "no": only an explicit
// "y"/"yes" (case-insensitive) counts as affirmative. EOF reads as "no" so
// piped, non-interactive invocations decline safely.
func Confirm(opts ConfirmOptions) (bool, error) {
	fmt.Fprintf(opts.Out, "%s [y/N] ", promptStyle.Render(opts.Title))

	line, err := bufio.NewReader(opts.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
