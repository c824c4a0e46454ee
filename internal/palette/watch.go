package palette

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Watch reloads reg whenever the palette file changes on disk, until ctx
// is cancelled. The containing directory is watched so that editors that
// replace the file by renaming are seen. Writes made by Save are ignored.
// Files that fail to parse are logged and leave reg untouched.
func (s *Store) Watch(ctx context.Context, reg *tile.Registry) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating palette watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	s.logger.Debug("watching palette", "path", s.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			s.reload(reg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("palette watcher error", "err", err)
		}
	}
}

// reload applies the file to reg unless it is unchanged since our last save.
func (s *Store) reload(reg *tile.Registry) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("palette reload failed", "path", s.path, "err", err)
		}
		return
	}
	if s.savedByUs(data) {
		return
	}
	defs, err := Decode(s.format, s.path, data)
	if err != nil {
		s.logger.Warn("palette reload failed", "path", s.path, "err", err)
		return
	}
	reg.Restore(defs)
	s.logger.Info("palette reloaded", "path", s.path, "tiles", len(defs))
}
