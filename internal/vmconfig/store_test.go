// SPDX-License-Identifier: MPL-2.0

package vmconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "configs"))
}

func strptr(s string) *string { return &s }

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record Record
	}{
		{
			name:   "minimal record",
			record: Record{QemuBin: "qemu-system-x86_64", Args: []string{}},
		},
		{
			name: "all fields present",
			record: Record{
				QemuBin:     "/usr/bin/qemu-system-aarch64",
				Args:        []string{"-m", "2G", "-hda", "${VM_DISK}"},
				Desc:        strptr("test box"),
				QemuVersion: strptr("9.0.2"),
			},
		},
		{
			name:   "empty description is preserved distinctly",
			record: Record{QemuBin: "qemu", Args: []string{"-nographic"}, Desc: strptr("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newTestStore(t)
			if err := store.Save("vm", tt.record); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}

			got, err := store.Load("vm")
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.record) {
				t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, tt.record)
			}
		})
	}
}

func TestStoreSaveOptionalFieldsStayAbsent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("vm", Record{QemuBin: "qemu", Args: []string{}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	path, err := store.Path("vm")
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file failed: %v", err)
	}
	for _, field := range []string{"desc", "qemu_version"} {
		if strings.Contains(string(data), field) {
			t.Errorf("absent optional field %q serialized: %s", field, data)
		}
	}
}

func TestStoreSaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Save("bad/name", Record{QemuBin: "qemu"}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save with separator in name: got %v, want ErrInvalidName", err)
	}
	if err := store.Save("vm", Record{}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Save with empty qemu_bin: got %v, want ErrInvalidRecord", err)
	}
}

func TestStoreSaveOverwritesSilently(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("vm", Record{QemuBin: "old"}); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}
	if err := store.Save("vm", Record{QemuBin: "new"}); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	got, err := store.Load("vm")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.QemuBin != "new" {
		t.Errorf("QemuBin = %q, want %q", got.QemuBin, "new")
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.Load("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) = %v, want ErrNotFound", err)
	}
}

func TestStoreLoadMalformed(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := os.MkdirAll(store.Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Dir(), "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load("broken")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Load(broken) = %v, want ErrDecode", err)
	}
}

func TestStoreExists(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	exists, err := store.Exists("vm")
	if err != nil || exists {
		t.Errorf("Exists before save = (%v, %v), want (false, nil)", exists, err)
	}

	if err := store.Save("vm", Record{QemuBin: "qemu"}); err != nil {
		t.Fatal(err)
	}
	exists, err = store.Exists("vm")
	if err != nil || !exists {
		t.Errorf("Exists after save = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}

	if err := store.Save("vm", Record{QemuBin: "qemu"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("vm"); err != nil {
		t.Errorf("Delete() failed: %v", err)
	}
	if exists, _ := store.Exists("vm"); exists {
		t.Error("configuration still exists after Delete()")
	}
}

func TestStoreListEmptyWhenDirMissing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	entries, err := store.List()
	if err != nil {
		t.Fatalf("List() on missing dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() on missing dir = %d entries, want 0", len(entries))
	}
}

func TestStoreListSkipsCorruption(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("good", Record{QemuBin: "qemu"}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Dir(), "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "good" {
		t.Errorf("List() = %v, want exactly the %q entry", entries, "good")
	}
}

func TestStoreListSortedByName(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	for _, name := range []Name{"zeta", "alpha", "mid"} {
		if err := store.Save(name, Record{QemuBin: "qemu"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	got := make([]Name, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name)
	}
	want := []Name{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() order = %v, want %v", got, want)
	}
}

func TestStoreRenameWithoutCollision(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("a", Record{QemuBin: "qemu", Desc: strptr("original")}); err != nil {
		t.Fatal(err)
	}

	prompted := false
	confirm := func(string) (bool, error) {
		prompted = true
		return false, nil
	}

	record, err := store.Rename(context.Background(), "a", "b", nil, false, confirm)
	if err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if prompted {
		t.Error("Rename prompted although the target did not exist")
	}
	if d, _ := record.Description(); d != "original" {
		t.Errorf("description = %q, want preserved %q", d, "original")
	}

	if exists, _ := store.Exists("a"); exists {
		t.Error("old name still exists after rename")
	}
	if exists, _ := store.Exists("b"); !exists {
		t.Error("new name missing after rename")
	}
}

func TestStoreRenameCollisionDeclined(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("a", Record{QemuBin: "qemu-a"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("b", Record{QemuBin: "qemu-b"}); err != nil {
		t.Fatal(err)
	}

	decline := func(string) (bool, error) { return false, nil }
	_, err := store.Rename(context.Background(), "a", "b", nil, false, decline)
	if !errors.Is(err, ErrRenameCancelled) {
		t.Fatalf("Rename() = %v, want ErrRenameCancelled", err)
	}

	// Both configurations stay untouched.
	a, err := store.Load("a")
	if err != nil || a.QemuBin != "qemu-a" {
		t.Errorf("Load(a) = (%v, %v), want untouched qemu-a", a, err)
	}
	b, err := store.Load("b")
	if err != nil || b.QemuBin != "qemu-b" {
		t.Errorf("Load(b) = (%v, %v), want untouched qemu-b", b, err)
	}
}

func TestStoreRenameCollisionConfirmed(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("a", Record{QemuBin: "qemu-a"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("b", Record{QemuBin: "qemu-b"}); err != nil {
		t.Fatal(err)
	}

	accept := func(string) (bool, error) { return true, nil }
	if _, err := store.Rename(context.Background(), "a", "b", nil, false, accept); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}

	b, err := store.Load("b")
	if err != nil || b.QemuBin != "qemu-a" {
		t.Errorf("Load(b) = (%v, %v), want overwritten qemu-a", b, err)
	}
	if exists, _ := store.Exists("a"); exists {
		t.Error("old name still exists after confirmed rename")
	}
}

func TestStoreRenameForceSkipsPrompt(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("a", Record{QemuBin: "qemu-a"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("b", Record{QemuBin: "qemu-b"}); err != nil {
		t.Fatal(err)
	}

	confirm := func(string) (bool, error) {
		t.Error("confirm called despite force")
		return false, nil
	}
	if _, err := store.Rename(context.Background(), "a", "b", nil, true, confirm); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
}

func TestStoreRenameDescOverride(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save("a", Record{QemuBin: "qemu", Desc: strptr("old desc")}); err != nil {
		t.Fatal(err)
	}

	record, err := store.Rename(context.Background(), "a", "b", strptr("new desc"), false, nil)
	if err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if d, _ := record.Description(); d != "new desc" {
		t.Errorf("description = %q, want %q", d, "new desc")
	}

	loaded, err := store.Load("b")
	if err != nil {
		t.Fatal(err)
	}
	if d, _ := loaded.Description(); d != "new desc" {
		t.Errorf("persisted description = %q, want %q", d, "new desc")
	}
}

func TestStoreRenameMissingSource(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.Rename(context.Background(), "ghost", "b", nil, false, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Rename(ghost) = %v, want ErrNotFound", err)
	}
}
