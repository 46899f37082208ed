package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// Pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// SQLiteMirror implements Mirror over a local SQLite database. Each
// project is one row with its full document as JSON, matching the
// one-document-per-project shape of the remote table it reconciles
// against.
type SQLiteMirror struct {
	path string
	db   *sql.DB
}

// NewSQLiteMirror creates a mirror at the given database path.
func NewSQLiteMirror(path string) *SQLiteMirror {
	return &SQLiteMirror{path: path}
}

// Open initializes the database connection and schema.
func (m *SQLiteMirror) Open() error {
	ctx := context.Background()

	db, err := sql.Open("sqlite", m.path)
	if err != nil {
		return fmt.Errorf("open mirror database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping mirror database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("create mirror schema: %w", err)
	}

	m.db = db
	return nil
}

// Close closes the database connection.
func (m *SQLiteMirror) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// List returns every mirrored project, most recently updated first.
func (m *SQLiteMirror) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT data FROM projects ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list mirrored projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan mirrored project: %w", err)
		}
		var p models.Project
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("decode mirrored project: %w", err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// Upsert writes one project row, replacing any existing row by id.
func (m *SQLiteMirror) Upsert(ctx context.Context, p *models.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	query := `
		INSERT INTO projects (id, name, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := m.db.ExecContext(ctx, query, p.ID, p.Name, string(data), time.Now()); err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

// Delete removes one project row. Deleting an absent row is not an
// error: the mirror converges either way.
func (m *SQLiteMirror) Delete(ctx context.Context, id string) error {
	if _, err := m.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
