package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

func setupMirror(t *testing.T) *SQLiteMirror {
	t.Helper()
	m := NewSQLiteMirror(filepath.Join(t.TempDir(), "mirror.db"))
	if err := m.Open(); err != nil {
		t.Fatalf("open mirror: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestMirrorUpsertListDelete(t *testing.T) {
	m := setupMirror(t)
	ctx := context.Background()

	p := models.NewProject("guide")
	p.Components = append(p.Components, models.NewComponentItem("Button", "Button"))
	if err := m.Upsert(ctx, p); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Upsert again with a changed name replaces the row.
	p.Name = "guide-renamed"
	if err := m.Upsert(ctx, p); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	list, err := m.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
	if list[0].Name != "guide-renamed" || len(list[0].Components) != 1 {
		t.Errorf("round trip mismatch: %+v", list[0])
	}

	if err := m.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting an absent row converges silently.
	if err := m.Delete(ctx, p.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}

	list, err = m.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list length = %d, want 0", len(list))
	}
}
