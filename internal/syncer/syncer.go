package syncer

import (
	"context"
	"log/slog"

	"github.com/dawsen1208/shelfd/internal/prefs"
	"github.com/dawsen1208/shelfd/internal/store"
)

// Synchronizer reconciles this instance with state-dir writes made by
// other instances on the same machine. Two signals matter: a logout
// marker triggers every instance's logout handler, and a preference
// write makes other instances reload that preference into memory.
// Best effort, same machine only.
type Synchronizer struct {
	changes  <-chan store.Change
	prefs    *prefs.Store
	onLogout func()
	onPrefs  func()
}

func New(changes <-chan store.Change, prefStore *prefs.Store, onLogout func()) *Synchronizer {
	if onLogout == nil {
		onLogout = func() {}
	}
	return &Synchronizer{
		changes:  changes,
		prefs:    prefStore,
		onLogout: onLogout,
	}
}

// OnPreferencesReload registers a callback invoked after a successful
// preference reload. Call before Run.
func (s *Synchronizer) OnPreferencesReload(fn func()) {
	s.onPrefs = fn
}

// Run consumes change signals until ctx is cancelled or the channel
// closes.
func (s *Synchronizer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-s.changes:
			if !ok {
				return
			}
			s.handle(change)
		}
	}
}

func (s *Synchronizer) handle(change store.Change) {
	switch change.File {
	case store.LogoutMarkerFile:
		slog.Info("Logout marker observed, invoking logout handler")
		s.onLogout()
	case store.AccessibilityFile, store.NotifyPreferencesFile:
		if err := s.prefs.Reload(); err != nil {
			slog.Warn("Failed to reload preferences", "file", change.File, "error", err)
			return
		}
		slog.Debug("Preferences reloaded", "file", change.File)
		if s.onPrefs != nil {
			s.onPrefs()
		}
	default:
		// Known-ID and log writes from other instances need no local
		// reaction; merges reload them under the file lock.
	}
}
