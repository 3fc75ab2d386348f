// SPDX-License-Identifier: MPL-2.0

package vmconfig

import (
	"errors"
	"testing"
)

func TestNameIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     Name
		wantValid bool
	}{
		{name: "simple name is valid", value: "my-vm", wantValid: true},
		{name: "name with dots is valid", value: "ubuntu-22.04", wantValid: true},
		{name: "name with underscore is valid", value: "test_vm", wantValid: true},
		{name: "empty is invalid", value: "", wantValid: false},
		{name: "whitespace-only is invalid", value: "   ", wantValid: false},
		{name: "forward slash is invalid", value: "foo/bar", wantValid: false},
		{name: "backslash is invalid", value: `foo\bar`, wantValid: false},
		{name: "parent traversal is invalid", value: "..", wantValid: false},
		{name: "dot is invalid", value: ".", wantValid: false},
		{name: "escaping path is invalid", value: "../../etc/passwd", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isValid, errs := tt.value.IsValid()
			if isValid != tt.wantValid {
				t.Errorf("Name(%q).IsValid() = %v, want %v", tt.value, isValid, tt.wantValid)
			}
			if !tt.wantValid {
				if len(errs) == 0 {
					t.Fatal("Name.IsValid() returned no errors for invalid value")
				}
				if !errors.Is(errs[0], ErrInvalidName) {
					t.Errorf("error does not wrap ErrInvalidName: %v", errs[0])
				}
			}
		})
	}
}

func TestRecordIsValid(t *testing.T) {
	t.Parallel()

	valid := Record{QemuBin: "qemu-system-x86_64"}
	if ok, errs := valid.IsValid(); !ok {
		t.Errorf("valid record rejected: %v", errs)
	}

	invalid := Record{QemuBin: "  "}
	ok, errs := invalid.IsValid()
	if ok {
		t.Error("record with blank qemu_bin accepted")
	}
	if len(errs) == 0 || !errors.Is(errs[0], ErrInvalidRecord) {
		t.Errorf("error does not wrap ErrInvalidRecord: %v", errs)
	}
}

func TestRecordDescription(t *testing.T) {
	t.Parallel()

	r := Record{QemuBin: "qemu"}
	if _, ok := r.Description(); ok {
		t.Error("absent description reported as present")
	}

	empty := ""
	r.Desc = &empty
	desc, ok := r.Description()
	if !ok || desc != "" {
		t.Errorf("empty description: got (%q, %v), want (\"\", true)", desc, ok)
	}
}

func TestRecordCommandLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "binary only",
			record: Record{QemuBin: "qemu-system-x86_64"},
			want:   "qemu-system-x86_64",
		},
		{
			name:   "binary with args",
			record: Record{QemuBin: "qemu-system-x86_64", Args: []string{"-m", "2G"}},
			want:   "qemu-system-x86_64 -m 2G",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.record.CommandLine(); got != tt.want {
				t.Errorf("CommandLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
