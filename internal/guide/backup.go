package guide

import (
	"errors"
	"time"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// ErrBackupVersion reports a backup payload with an unsupported version.
var ErrBackupVersion = errors.New("guide: unsupported backup version")

// ExportBackup snapshots every user project and template into a backup
// payload. Overrides and meta overrides stay local; the seed is always
// recoverable without them.
func (s *Store) ExportBackup() *models.BackupPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, cloneForView(p))
	}
	return &models.BackupPayload{
		Version:    models.BackupVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Projects:   projects,
	}
}

// RestoreBackup merges a backup payload into the store. Each restored
// project runs through the same normalization as persisted state;
// records replace existing projects by id, new ids append. Returns the
// number of projects restored.
func (s *Store) RestoreBackup(b *models.BackupPayload) (int, error) {
	if b == nil || b.Version < 1 || b.Version > models.BackupVersion {
		return 0, ErrBackupVersion
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := 0
	for _, p := range b.Projects {
		if p == nil {
			continue
		}
		normalizeProject(p)
		if models.IsTemplateKind(p.ID) {
			p.ID = "" // reserved ids never enter the project list
			normalizeProject(p)
		}
		if existing := s.findProject(p.ID); existing != nil {
			*existing = *p
		} else {
			s.projects = append(s.projects, p)
		}
		restored++
	}
	return restored, s.persist()
}
