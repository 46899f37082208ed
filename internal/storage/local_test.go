package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(filepath.Join(t.TempDir(), "state.json"))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if loaded != nil {
		t.Fatal("missing file should load as nil state")
	}

	state := &models.PersistedState{
		Projects: []*models.Project{models.NewProject("alpha")},
	}
	if err := store.Save(state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Projects) != 1 || loaded.Projects[0].Name != "alpha" {
		t.Errorf("round trip lost data: %+v", loaded.Projects)
	}
}

func TestLocalStoreRefusesEmptyOverwrite(t *testing.T) {
	store := newTestStore(t)

	full := &models.PersistedState{Projects: []*models.Project{models.NewProject("keep")}}
	if err := store.Save(full); err != nil {
		t.Fatalf("save: %v", err)
	}

	err := store.Save(&models.PersistedState{})
	if !errors.Is(err, ErrEmptyOverwrite) {
		t.Fatalf("err = %v, want ErrEmptyOverwrite", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Projects) != 1 {
		t.Error("existing state should be untouched after refused write")
	}
}

func TestLocalStoreAllowsEmptyWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(&models.PersistedState{}); err != nil {
		t.Fatalf("saving empty state over nothing should work: %v", err)
	}
}
