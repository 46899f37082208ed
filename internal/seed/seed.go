// Package seed loads the read-only system template projects (krds,
// mxds). Templates come from JSON documents in a data directory and
// fall back to built-in seeds when the files are missing or malformed.
package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Loader reads and caches system templates per kind. Loading is
// idempotent and safe to call concurrently; a second load of the same
// kind returns the cached project.
type Loader struct {
	dir string

	mu    sync.Mutex
	cache map[models.TemplateKind]*models.Project
}

// NewLoader creates a loader over a template data directory. An empty
// dir serves built-in seeds only.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[models.TemplateKind]*models.Project),
	}
}

// Load returns the system template for a kind, reading and normalizing
// its JSON document on first use. Any failure falls back to the
// built-in seed; Load never returns nil.
func (l *Loader) Load(kind models.TemplateKind) *models.Project {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.cache[kind]; ok {
		return p
	}

	p, err := l.read(kind)
	if err != nil {
		log.Printf("seed: load %s template: %v (using built-in seed)", kind, err)
		p = Builtin(kind)
	}
	l.cache[kind] = p
	return p
}

// Invalidate drops the cached template for a kind so the next Load
// re-reads its document.
func (l *Loader) Invalidate(kind models.TemplateKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, kind)
}

func (l *Loader) read(kind models.TemplateKind) (*models.Project, error) {
	if l.dir == "" {
		return nil, fmt.Errorf("no template directory configured")
	}
	path := filepath.Join(l.dir, string(kind)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}
	var raw models.Project
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse template file: %w", err)
	}
	return Normalize(&raw, kind), nil
}
