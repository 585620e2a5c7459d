package watcher

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeFunc is called once per changed file after the debounce interval
type ChangeFunc func(ctx context.Context, path string) error

// Watcher watches files for changes
type Watcher struct {
	paths    []string
	onChange ChangeFunc
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a new file watcher
func New(path string, onChange ChangeFunc) *Watcher {
	return &Watcher{
		paths:    []string{path},
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		logger:   zap.NewNop(),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets the logger for change and error reports
func (w *Watcher) WithLogger(logger *zap.Logger) *Watcher {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Also adds another file to watch
func (w *Watcher) Also(path string) *Watcher {
	if path != "" {
		w.paths = append(w.paths, path)
	}
	return w
}

// Watch starts watching the files for changes.
// It blocks until the context is cancelled or the watcher fails.
// Callback errors are logged and do not stop the watch.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directories containing the files.
	// This handles cases where a file is replaced (e.g., by editors)
	watchedDirs := make(map[string]bool)
	fileSet := make(map[string]bool)
	for _, path := range w.paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		dir := filepath.Dir(absPath)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			watchedDirs[dir] = true
		}
		fileSet[absPath] = true
		w.logger.Info("watching for changes", zap.String("path", absPath))
	}

	pending := make(map[string]bool)
	var debounceTimer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil || !fileSet[absPath] {
				continue
			}

			// Handle write or create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce rapid changes
			pending[absPath] = true
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(w.debounce)
			} else {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(w.debounce)
			}
			fire = debounceTimer.C

		case <-fire:
			fire = nil
			w.flush(ctx, pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// flush reports pending changes in path order and clears them
func (w *Watcher) flush(ctx context.Context, pending map[string]bool) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
		delete(pending, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		w.logger.Info("file changed", zap.String("path", p))
		if err := w.onChange(ctx, p); err != nil {
			w.logger.Error("change handler failed", zap.String("path", p), zap.Error(err))
		}
	}
}
