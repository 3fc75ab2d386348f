// SPDX-License-Identifier: MPL-2.0

package vmconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("configuration not found")
	// ErrDecode is the sentinel error wrapped by DecodeError.
	ErrDecode = errors.New("failed to decode configuration")
	// ErrEncode is the sentinel error wrapped by EncodeError.
	ErrEncode = errors.New("failed to encode configuration")
	// ErrRenameCancelled is returned by Rename when the user declines to
	// overwrite an existing target. It is a deliberate no-op, not a failure;
	// the CLI maps it to exit code 0.
	ErrRenameCancelled = errors.New("rename cancelled")
)

type (
	// ConfirmFunc asks the user a yes/no question and reports the answer.
	// Implementations must default to "no" on anything other than an explicit
	// affirmative. The store never prompts directly; the capability is
	// injected so the rename protocol stays testable.
	ConfirmFunc func(prompt string) (bool, error)

	// NotFoundError is returned when a name has no stored configuration.
	// It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Name Name
	}

	// DecodeError is returned when a stored file cannot be deserialized into
	// a Record. It wraps ErrDecode for errors.Is() compatibility.
	DecodeError struct {
		Name  Name
		Cause error
	}

	// EncodeError is returned when a Record cannot be serialized.
	// It wraps ErrEncode for errors.Is() compatibility.
	EncodeError struct {
		Name  Name
		Cause error
	}

	// Entry pairs a configuration name with its loaded record.
	Entry struct {
		Name   Name
		Record Record
	}

	// Store persists configuration records as one JSON file per name inside
	// a single directory. The directory is injected at construction time so
	// tests can point the store at a temporary location.
	//
	// The store assumes at most one process manipulates the directory at a
	// time; concurrent writers race at the filesystem level (last write
	// wins), with no locking.
	Store struct {
		dir string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration %q does not exist", string(e.Name))
}

// Unwrap returns ErrNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode configuration %q: %v", string(e.Name), e.Cause)
}

// Unwrap returns ErrDecode so callers can use errors.Is for programmatic detection.
func (e *DecodeError) Unwrap() error { return ErrDecode }

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode configuration %q: %v", string(e.Name), e.Cause)
}

// Unwrap returns ErrEncode so callers can use errors.Is for programmatic detection.
func (e *EncodeError) Unwrap() error { return ErrEncode }

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first Save; a missing directory reads as an empty store.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the canonical file path for name. It fails with
// InvalidNameError before touching the filesystem when the name would
// resolve outside the store directory.
func (s *Store) Path(name Name) (string, error) {
	if ok, errs := name.IsValid(); !ok {
		return "", errs[0]
	}
	return filepath.Join(s.dir, string(name)+FileExt), nil
}

// Exists reports whether a configuration is stored under name.
func (s *Store) Exists(name Name) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return true, nil
}

// Save serializes record and writes it to the canonical path for name,
// creating the store directory if needed. An existing configuration with the
// same name is overwritten silently; callers wanting confirmation must check
// Exists first.
func (s *Store) Save(name Name, record Record) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if ok, errs := record.IsValid(); !ok {
		return errs[0]
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return &EncodeError{Name: name, Cause: err}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration %q: %w", string(name), err)
	}

	return nil
}

// Load reads and deserializes the configuration stored under name.
func (s *Store) Load(name Name) (Record, error) {
	path, err := s.Path(name)
	if err != nil {
		return Record{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, &NotFoundError{Name: name}
		}
		return Record{}, fmt.Errorf("failed to read configuration %q: %w", string(name), err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, &DecodeError{Name: name, Cause: err}
	}

	return record, nil
}

// Delete removes the configuration stored under name.
func (s *Store) Delete(name Name) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Name: name}
		}
		return fmt.Errorf("failed to delete configuration %q: %w", string(name), err)
	}
	return nil
}

// List enumerates all valid configurations, sorted by name for stable
// output. Files that fail to deserialize are skipped rather than failing the
// whole listing; a missing store directory reads as an empty store.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config directory %s: %w", s.dir, err)
	}

	records := make(map[Name]Record)
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), FileExt) {
			continue
		}
		name := Name(strings.TrimSuffix(de.Name(), FileExt))
		record, err := s.Load(name)
		if err != nil {
			// Partial corruption must not block listing the rest.
			continue
		}
		records[name] = record
	}

	names := maps.Keys(records)
	slices.Sort(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Record: records[name]})
	}

	return entries, nil
}

// Rename re-keys the configuration stored under old to new, optionally
// overlaying a new description (nil preserves the existing one). When new
// already exists and force is false, confirm is consulted; a declined
// confirmation returns ErrRenameCancelled with both configurations
// untouched.
//
// The new file is written before the old one is removed, so a crash between
// the two steps leaves the configuration recoverable under its old name. If
// removing the old file fails after the new one was written, the error is
// surfaced (the leftover is a visible inconsistency) but new exists and is
// usable.
func (s *Store) Rename(ctx context.Context, oldName, newName Name, descOverride *string, force bool, confirm ConfirmFunc) (Record, error) {
	select {
	case <-ctx.Done():
		return Record{}, fmt.Errorf("rename canceled: %w", ctx.Err())
	default:
	}

	exists, err := s.Exists(oldName)
	if err != nil {
		return Record{}, err
	}
	if !exists {
		return Record{}, &NotFoundError{Name: oldName}
	}

	targetExists, err := s.Exists(newName)
	if err != nil {
		return Record{}, err
	}
	if targetExists && !force {
		if confirm == nil {
			return Record{}, ErrRenameCancelled
		}
		ok, err := confirm(fmt.Sprintf("Configuration %q already exists, overwrite?", string(newName)))
		if err != nil {
			return Record{}, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return Record{}, ErrRenameCancelled
		}
	}

	record, err := s.Load(oldName)
	if err != nil {
		return Record{}, err
	}
	if descOverride != nil {
		record.Desc = descOverride
	}

	if err := s.Save(newName, record); err != nil {
		return Record{}, err
	}
	if err := s.Delete(oldName); err != nil {
		return Record{}, fmt.Errorf("renamed %q to %q but failed to remove the old configuration: %w", string(oldName), string(newName), err)
	}

	return record, nil
}
