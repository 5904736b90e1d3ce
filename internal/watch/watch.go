// Package watch re-runs a build when its input files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher calls a function whenever one of a set of files changes.
type Watcher struct {
	Debounce time.Duration
	Logger   zerolog.Logger
}

// Run watches paths until ctx is cancelled. Parent directories are watched
// rather than the files themselves so that editors replacing a file by
// rename are noticed. Bursts of events within Debounce collapse into one
// call of fn. Errors from fn are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, paths []string, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot start watcher: %w", err)
	}
	defer fsw.Close()

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", p, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			return fmt.Errorf("cannot watch %s: %w", d, err)
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.Logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Error().Err(err).Msg("watch error")

		case <-timer.C:
			if err := fn(); err != nil {
				w.Logger.Error().Err(err).Msg("rebuild failed")
				continue
			}
			w.Logger.Info().Msg("rebuilt")
		}
	}
}
