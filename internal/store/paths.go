package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Well-known file names inside the state directory. Other processes
// sharing the directory watch these names for changes.
const (
	KnownIDsFile          = "known_ids.json"
	NotificationsFile     = "notifications.json"
	AccessibilityFile     = "accessibility.json"
	NotifyPreferencesFile = "notify_prefs.json"
	LogoutMarkerFile      = "logout"
	lockFile              = "state.lock"
)

// ResolveStatePath resolves the configured state directory.
// If empty, it falls back to ~/.shelfd/state.
func ResolveStatePath(statePath string) (string, error) {
	if trimmed := strings.TrimSpace(statePath); trimmed != "" {
		return trimmed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".shelfd", "state"), nil
}

// EnsureStateDir resolves and creates the state directory.
func EnsureStateDir(statePath string) (string, error) {
	base, err := ResolveStatePath(statePath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", err
	}
	return base, nil
}

// LockPath returns the shared lock file path for a state directory.
func LockPath(basePath string) string {
	return filepath.Join(basePath, lockFile)
}
