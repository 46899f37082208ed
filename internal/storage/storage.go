// Package storage provides the persistence boundaries of the guide
// store: a local JSON state blob and an optional SQLite remote mirror.
package storage

import (
	"context"
	"errors"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

var (
	// ErrQuotaExceeded reports a state write that failed because the
	// device is out of space. The UI tells the user to free space; any
	// other write failure points at configuration instead.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	// ErrEmptyOverwrite reports a refused write that would have
	// replaced a non-empty persisted project list with an empty one.
	ErrEmptyOverwrite = errors.New("storage: refusing to overwrite non-empty state with empty project list")
)

// StateStore persists the aggregate state blob between sessions.
type StateStore interface {
	// Load returns the persisted state, or (nil, nil) when none exists.
	Load() (*models.PersistedState, error)
	// Save writes the state. Existing persisted state is left untouched
	// on failure.
	Save(state *models.PersistedState) error
}

// Mirror is the optional remote reflection of the project list. The
// in-memory state is the source of truth; the mirror is advisory and
// must never block or roll back local mutation.
type Mirror interface {
	List(ctx context.Context) ([]*models.Project, error)
	Upsert(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
	Close() error
}
