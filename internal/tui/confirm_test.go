// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase y", input: "y\n", want: true},
		{name: "uppercase Y", input: "Y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "YES", input: "YES\n", want: true},
		{name: "padded yes", input: "  yes  \n", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "empty line defaults to no", input: "\n", want: false},
		{name: "garbage defaults to no", input: "sure, why not\n", want: false},
		{name: "EOF defaults to no", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			got, err := Confirm(ConfirmOptions{
				Title: "Overwrite?",
				In:    strings.NewReader(tt.input),
				Out:   out,
			})
			if err != nil {
				t.Fatalf("Confirm() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "[y/N]") {
				t.Errorf("prompt missing the default-no marker: %q", out.String())
			}
		})
	}
}
