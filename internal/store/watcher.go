package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Change is a state-dir mutation observed from another process.
type Change struct {
	// File is the base name of the changed state file, e.g. "logout"
	// or "accessibility.json".
	File string
}

// Watcher turns filesystem events on the state directory into typed
// Change signals for the cross-instance synchronizer. Best effort: a
// missed event costs a stale in-memory preference until the next write,
// never a duplicate alert.
type Watcher struct {
	basePath string
	watcher  *fsnotify.Watcher
	changes  chan Change
}

func NewWatcher(basePath string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(basePath); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		basePath: basePath,
		watcher:  fsw,
		changes:  make(chan Change, 16),
	}, nil
}

// Changes returns the signal channel. Closed when the watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start pumps filesystem events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		defer close(w.changes)
		defer w.watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.shouldProcessEvent(event) {
					continue
				}
				select {
				case w.changes <- Change{File: filepath.Base(event.Name)}:
				default:
					slog.Debug("State change signal dropped, channel full", "file", event.Name)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("State watcher error", "error", err)
			}
		}
	}()
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	// Atomic writes land via temp files; ignore them and the lock file.
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") || name == lockFile {
		return false
	}
	return true
}
