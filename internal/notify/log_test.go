package notify

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dawsen1208/shelfd/internal/store"
)

func TestLogPrependNewestFirst(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLog(filepath.Join(dir, store.NotificationsFile), testLock(t, dir), 5)
	if err != nil {
		t.Fatal(err)
	}

	if err := l.Prepend([]Event{{ID: "a"}}); err != nil {
		t.Fatal(err)
	}
	if err := l.Prepend([]Event{{ID: "b"}}); err != nil {
		t.Fatal(err)
	}

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "b" || entries[1].ID != "a" {
		t.Errorf("Expected newest first, got %s, %s", entries[0].ID, entries[1].ID)
	}
}

func TestLogCapTrimsTail(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLog(filepath.Join(dir, store.NotificationsFile), testLock(t, dir), 3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := l.Prepend([]Event{{ID: fmt.Sprintf("e%d", i)}}); err != nil {
			t.Fatal(err)
		}
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("Expected cap of 3, got %d", len(entries))
	}
	if entries[0].ID != "e4" {
		t.Errorf("Expected newest entry at head, got %s", entries[0].ID)
	}
	if entries[2].ID != "e2" {
		t.Errorf("Expected oldest retained entry to be e2, got %s", entries[2].ID)
	}
}

func TestLogRemove(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLog(filepath.Join(dir, store.NotificationsFile), testLock(t, dir), 5)
	if err != nil {
		t.Fatal(err)
	}

	l.Prepend([]Event{{ID: "a"}, {ID: "b"}})

	if err := l.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 1 {
		t.Errorf("Expected 1 entry after remove, got %d", l.Len())
	}

	// Removing an absent id is a no-op.
	if err := l.Remove("missing"); err != nil {
		t.Errorf("Remove of absent id should not fail: %v", err)
	}
}

func TestLogMergesEntriesFromOtherInstance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, store.NotificationsFile)

	a, err := NewLog(path, testLock(t, dir), 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewLog(path, testLock(t, dir), 10)
	if err != nil {
		t.Fatal(err)
	}

	if err := a.Prepend([]Event{{ID: "from-a"}}); err != nil {
		t.Fatal(err)
	}
	if err := b.Prepend([]Event{{ID: "from-b"}}); err != nil {
		t.Fatal(err)
	}

	ids := map[string]bool{}
	for _, e := range b.Entries() {
		ids[e.ID] = true
	}
	if !ids["from-a"] || !ids["from-b"] {
		t.Errorf("Expected both instances' entries to survive, got %v", ids)
	}
}
