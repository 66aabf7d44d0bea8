package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called when a watched collection file changes.
type ChangeFunc func(name string, op fsnotify.Op)

// Watch calls fn whenever the collection file is created, written, renamed
// over or removed, until ctx is done. The parent directory is watched rather
// than the file itself so that atomic renames are observed. Watch returns once
// the watcher is installed; notifications are delivered from a separate
// goroutine.
//
// Watch always observes the real file system, whatever FileSystem the store
// was configured with.
func (s *Store) Watch(ctx context.Context, name string, fn ChangeFunc) error {
	canonical := s.ResolveName(name)
	if err := validateName(canonical); err != nil {
		return err
	}
	path := filepath.Clean(s.Path(canonical))
	dir := filepath.Dir(path)

	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.logger.Debug("watching collection", "collection", canonical, "path", path)

	const interesting = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || event.Op&interesting == 0 {
					continue
				}
				fn(canonical, event.Op)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("error watching collection", "collection", canonical, "err", err)
			}
		}
	}()
	return nil
}
