package guide

import (
	"context"
	"log"

	"github.com/good-yellow-bee/liveguide/internal/metrics"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

// SyncMirror pushes every user project and template to the mirror and
// prunes mirror rows with no local counterpart. Failures are isolated
// per entity: one bad record never blocks the rest of the batch, and no
// failure ever propagates into local state.
func (s *Store) SyncMirror(ctx context.Context) (synced, failed int) {
	if s.mirror == nil {
		return 0, 0
	}
	metrics.MirrorSyncsTotal.Inc()
	defer func() {
		metrics.MirrorEntitiesTotal.WithLabelValues("synced").Add(float64(synced))
		metrics.MirrorEntitiesTotal.WithLabelValues("failed").Add(float64(failed))
	}()

	// Snapshot under the lock; upserts run unlocked and must not see
	// concurrent edits mid-serialization.
	s.mu.Lock()
	local := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		local = append(local, cloneForView(p))
	}
	s.mu.Unlock()

	localIDs := make(map[string]bool, len(local))
	for _, p := range local {
		localIDs[p.ID] = true
		if err := s.mirror.Upsert(ctx, p); err != nil {
			log.Printf("guide: mirror upsert %s: %v", p.ID, err)
			failed++
			continue
		}
		synced++
	}

	remote, err := s.mirror.List(ctx)
	if err != nil {
		log.Printf("guide: mirror list: %v", err)
		return synced, failed
	}
	for _, p := range remote {
		if localIDs[p.ID] {
			continue
		}
		if err := s.mirror.Delete(ctx, p.ID); err != nil {
			log.Printf("guide: mirror prune %s: %v", p.ID, err)
			failed++
		}
	}
	return synced, failed
}
