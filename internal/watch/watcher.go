// Package watch triggers re-harvests when the source tree changes
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gamekeeper/gamekeeper/pkg/logger"
)

// Watcher watches a source root with fsnotify and signals once changes
// have settled. Every signal means "re-run the full pipeline"; there is
// no incremental tracking of what changed.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     logger.Logger
	exclusions []string
	settling   time.Duration
	settled    chan struct{}
}

// New creates a watcher. settling is how long the tree must stay quiet
// after the last event before a signal is emitted.
func New(log logger.Logger, settling time.Duration, exclusions []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:    fsWatcher,
		logger:     log.WithScope("watch"),
		exclusions: exclusions,
		settling:   settling,
		settled:    make(chan struct{}, 1),
	}, nil
}

// Close closes the underlying watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Settled returns the channel signalled after changes settle
func (w *Watcher) Settled() <-chan struct{} {
	return w.settled
}

// Run watches root recursively until the context is cancelled
func (w *Watcher) Run(ctx context.Context, root string) error {
	if err := w.addTree(root); err != nil {
		return err
	}
	w.logger.Info(fmt.Sprintf("Watching %s", root))

	var settleTimer *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isExcluded(event.Name) {
				continue
			}
			// New directories must be watched too
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn(fmt.Sprintf("Failed to watch %s: %v", event.Name, err))
					}
				}
			}
			w.logger.Debug("Change detected", logger.WithField("path", event.Name), logger.WithField("op", event.Op.String()))
			if settleTimer == nil {
				settleTimer = time.NewTimer(w.settling)
			} else {
				if !settleTimer.Stop() {
					select {
					case <-settleTimer.C:
					default:
					}
				}
				settleTimer.Reset(w.settling)
			}
			settleC = settleTimer.C

		case <-settleC:
			settleC = nil
			select {
			case w.settled <- struct{}{}:
			default:
				// A re-harvest is already pending
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(fmt.Sprintf("Watcher error: %v", err))
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		// The root itself is always watched; exclusions only prune
		// subtrees below it
		if path != root && w.isExcluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn(fmt.Sprintf("Failed to watch directory %s: %v", path, err))
		}
		return nil
	})
}

// isExcluded matches the base name of path against the configured
// exclusion patterns
func (w *Watcher) isExcluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.exclusions {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
