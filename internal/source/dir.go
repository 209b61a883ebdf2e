package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// DirSource reports files created in a directory, by base name.
type DirSource struct {
	dir     string
	watcher *fsnotify.Watcher
}

// NewDirSource starts watching dir.
func NewDirSource(dir string) (*DirSource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &DirSource{dir: dir, watcher: watcher}, nil
}

// Next blocks until a file is created in the watched directory.
func (s *DirSource) Next(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case event, ok := <-s.watcher.Events:
			if !ok {
				return "", Fatal(errors.New("watcher closed"))
			}
			if event.Has(fsnotify.Create) {
				return filepath.Base(event.Name), nil
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return "", Fatal(errors.New("watcher closed"))
			}
			return "", Transient(fmt.Errorf("watch %s: %w", s.dir, err))
		}
	}
}

// Close stops the underlying watcher.
func (s *DirSource) Close() error {
	return s.watcher.Close()
}
