package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsStateFileWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, LogoutMarkerFile), []byte("now"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case change := <-w.Changes():
			if change.File == LogoutMarkerFile {
				return
			}
		case <-deadline:
			t.Fatal("Logout marker write not observed")
		}
	}
}

func TestWatcherIgnoresLockFile(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	if err := os.WriteFile(LockPath(dir), nil, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes():
		t.Fatalf("Lock file write should be filtered, got %v", change)
	case <-time.After(100 * time.Millisecond):
	}
}
