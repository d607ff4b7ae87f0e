package prefs

import (
	"testing"
	"time"

	"github.com/dawsen1208/shelfd/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dir := t.TempDir()
	lock := store.NewFileLock(dir, &store.FileLockConfig{
		LockTimeout:  time.Second,
		LockRetry:    10 * time.Millisecond,
		LockMaxRetry: 100,
	})

	s, err := NewStore(dir, lock)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMissingFilesMeanDefaults(t *testing.T) {
	s := newTestStore(t)

	acc := s.Accessibility()
	if acc.TTSEnabled || acc.AccessibilityMode {
		t.Error("Accessibility defaults should be off")
	}

	notif := s.Notification()
	if !notif.InApp || !notif.Sound {
		t.Error("In-app alerts and sound should default on")
	}
	if notif.ReminderLeadDays != 3 {
		t.Errorf("Expected default lead of 3 days, got %d", notif.ReminderLeadDays)
	}
}

func TestSetAndReloadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	err := s.SetAccessibility(func(a *Accessibility) {
		a.TTSEnabled = true
	})
	if err != nil {
		t.Fatal(err)
	}

	err = s.SetNotification(func(n *Notification) {
		n.Sound = false
		n.ReminderLeadDays = 7
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}

	if !s.Accessibility().TTSEnabled {
		t.Error("TTS preference lost on reload")
	}
	if s.Notification().Sound {
		t.Error("Sound preference lost on reload")
	}
	if s.Notification().ReminderLeadDays != 7 {
		t.Error("Lead days preference lost on reload")
	}
}

func TestWritesDoNotClobberOtherFamily(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetNotification(func(n *Notification) { n.Email = true }); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAccessibility(func(a *Accessibility) { a.AccessibilityMode = true }); err != nil {
		t.Fatal(err)
	}

	if !s.Notification().Email {
		t.Error("Notification preference clobbered by accessibility write")
	}
	if !s.Accessibility().AccessibilityMode {
		t.Error("Accessibility preference not applied")
	}
}
