package server

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

const reloadDebounce = 200 * time.Millisecond

// Loader produces a fresh site, typically content.Load bound to a directory.
type Loader func() (*content.Site, error)

// Watch reloads the site whenever a file under dir changes. Bursts of events
// are coalesced. A load that fails is logged and the previous site stays in
// place. Watch blocks until ctx is cancelled.
func (s *Server) Watch(ctx context.Context, dir string, load Loader) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: watch: %w", err)
	}
	defer w.Close()
	if err := addTree(w, dir); err != nil {
		return fmt.Errorf("server: watch %s: %w", dir, err)
	}

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				_ = addTree(w, ev.Name)
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			site, err := load()
			if err != nil {
				s.logger.Error("reload failed; keeping previous content", zap.Error(err))
				continue
			}
			s.Reload(site)
		}
	}
}

// addTree watches root and every directory below it. fsnotify is not recursive.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
