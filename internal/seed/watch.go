package seed

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Watch invalidates cached templates when their JSON documents change
// on disk, so the next read picks up the new seed. onReload, when
// non-nil, is called after each invalidation. Watch blocks until the
// context is canceled; it returns immediately when no directory is
// configured.
func (l *Loader) Watch(ctx context.Context, onReload func(models.TemplateKind)) error {
	if l.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return err
	}
	log.Printf("seed: watching template directory %s", l.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := kindForFile(event.Name)
			if !ok {
				continue
			}
			log.Printf("seed: %s template changed (%s), reloading", kind, event.Op)
			l.Invalidate(kind)
			if onReload != nil {
				onReload(kind)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("seed: watch error: %v", err)
		}
	}
}

func kindForFile(path string) (models.TemplateKind, bool) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, ".json")
	if name == base {
		return "", false
	}
	if !models.IsTemplateKind(name) {
		return "", false
	}
	return models.TemplateKind(name), true
}
