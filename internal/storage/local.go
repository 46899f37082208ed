package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// LocalStore persists the state blob as a single JSON file, written
// atomically via a temp file and rename.
type LocalStore struct {
	path string
}

// NewLocalStore creates a local state store at the given file path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// Load reads the persisted state. A missing file is not an error: the
// caller gets (nil, nil) and seeds fresh state. A corrupt file is
// reported so the caller can decide; it is never silently replaced.
func (s *LocalStore) Load() (*models.PersistedState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var state models.PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return &state, nil
}

// Save writes the state blob. A write that would replace a non-empty
// persisted project list with an empty one is refused: it is the
// signature of a serialization race wiping existing data. Disk-full
// conditions surface as ErrQuotaExceeded so the UI can distinguish
// "free some space" from "check configuration".
func (s *LocalStore) Save(state *models.PersistedState) error {
	if len(state.Projects) == 0 {
		if prev, err := s.Load(); err == nil && prev != nil && len(prev.Projects) > 0 {
			return ErrEmptyOverwrite
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return classifyWriteErr(err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return classifyWriteErr(err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return classifyWriteErr(err)
	}
	return nil
}

func classifyWriteErr(err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("write state file: %w", err)
}
