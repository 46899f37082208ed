package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/good-yellow-bee/liveguide/internal/storage"
)

// StateDirChecker verifies the local state directory is writable. A
// read-only or missing directory means every guide mutation would fail
// to persist.
type StateDirChecker struct {
	dir string
}

// NewStateDirChecker creates a checker for the state file's directory.
func NewStateDirChecker(statePath string) *StateDirChecker {
	return &StateDirChecker{dir: filepath.Dir(statePath)}
}

// Name returns the checker name.
func (c *StateDirChecker) Name() string {
	return "state"
}

// Check probes the directory with a throwaway write.
func (c *StateDirChecker) Check(ctx context.Context) error {
	f, err := os.CreateTemp(c.dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("state dir not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}

// MirrorChecker verifies the SQLite mirror answers queries.
type MirrorChecker struct {
	mirror storage.Mirror
}

// NewMirrorChecker creates a new mirror health checker.
func NewMirrorChecker(m storage.Mirror) *MirrorChecker {
	return &MirrorChecker{mirror: m}
}

// Name returns the checker name.
func (c *MirrorChecker) Name() string {
	return "mirror"
}

// Check verifies the mirror is accessible.
func (c *MirrorChecker) Check(ctx context.Context) error {
	if c.mirror == nil {
		return fmt.Errorf("mirror not configured")
	}
	_, err := c.mirror.List(ctx)
	return err
}
