package syncer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dawsen1208/shelfd/internal/prefs"
	"github.com/dawsen1208/shelfd/internal/store"
)

func testPrefs(t *testing.T) (*prefs.Store, string) {
	t.Helper()

	dir := t.TempDir()
	lock := store.NewFileLock(dir, &store.FileLockConfig{
		LockTimeout:  time.Second,
		LockRetry:    10 * time.Millisecond,
		LockMaxRetry: 100,
	})

	p, err := prefs.NewStore(dir, lock)
	if err != nil {
		t.Fatal(err)
	}
	return p, dir
}

func TestSynchronizerInvokesLogoutHandler(t *testing.T) {
	p, _ := testPrefs(t)

	changes := make(chan store.Change, 1)
	logout := make(chan struct{}, 1)

	s := New(changes, p, func() { logout <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	changes <- store.Change{File: store.LogoutMarkerFile}

	select {
	case <-logout:
	case <-time.After(time.Second):
		t.Fatal("Logout handler not invoked")
	}
}

func TestSynchronizerReloadsPreferences(t *testing.T) {
	p, dir := testPrefs(t)

	if p.Accessibility().TTSEnabled {
		t.Fatal("Expected TTS disabled by default")
	}

	// Another instance writes the preference file directly.
	err := store.WriteJSON(filepath.Join(dir, store.AccessibilityFile), &prefs.Accessibility{TTSEnabled: true})
	if err != nil {
		t.Fatal(err)
	}

	changes := make(chan store.Change, 1)
	s := New(changes, p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	changes <- store.Change{File: store.AccessibilityFile}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if p.Accessibility().TTSEnabled {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Preference change not reloaded")
}

func TestSynchronizerNotifiesAfterPreferenceReload(t *testing.T) {
	p, dir := testPrefs(t)

	err := store.WriteJSON(filepath.Join(dir, store.NotifyPreferencesFile), &prefs.Notification{InApp: true, Sound: false})
	if err != nil {
		t.Fatal(err)
	}

	changes := make(chan store.Change, 1)
	reloaded := make(chan struct{}, 1)

	s := New(changes, p, nil)
	s.OnPreferencesReload(func() { reloaded <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	changes <- store.Change{File: store.NotifyPreferencesFile}

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("Reload callback not invoked")
	}
	if p.Notification().Sound {
		t.Fatal("Expected reload to pick up sound=false")
	}
}

func TestSynchronizerIgnoresUnrelatedFiles(t *testing.T) {
	p, _ := testPrefs(t)

	changes := make(chan store.Change, 2)
	logout := make(chan struct{}, 1)
	s := New(changes, p, func() { logout <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	changes <- store.Change{File: store.KnownIDsFile}
	changes <- store.Change{File: "something-else.tmp"}

	select {
	case <-logout:
		t.Fatal("Unrelated change must not trigger logout")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSynchronizerStopsOnClosedChannel(t *testing.T) {
	p, _ := testPrefs(t)

	changes := make(chan store.Change)
	s := New(changes, p, nil)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	close(changes)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return when the channel closes")
	}
}
