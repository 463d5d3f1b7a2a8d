// Package watch re-runs a callback when any of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups editor save bursts into one change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches files through their parent directories, which keeps
// working across editors that save atomically by renaming.
type Watcher struct {
	files    map[string]bool
	logger   zerolog.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New starts watching the given files.
func New(logger zerolog.Logger, debounce time.Duration, paths ...string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]bool),
		logger:   logger,
		debounce: debounce,
		watcher:  watcher,
	}

	dirs := make(map[string]bool)

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("absolute path: %w", err)
		}

		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch directory %s: %w", dir, err)
		}

		logger.Debug().Str("dir", dir).Msg("watching directory")
	}

	return w, nil
}

// Run calls fn once per burst of changes until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
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
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("watched file changed")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C

		case <-fire:
			fire = nil
			fn()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// relevant reports whether event is a write or create of a watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return w.files[abs]
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
