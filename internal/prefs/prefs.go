package prefs

import (
	"path/filepath"
	"sync"

	"github.com/dawsen1208/shelfd/internal/store"
)

// Accessibility preferences are process-wide, persisted, and reloaded
// when another instance writes them.
type Accessibility struct {
	TTSEnabled        bool `json:"tts_enabled"`
	AccessibilityMode bool `json:"accessibility_mode"`
}

// Notification preferences gate how alerts are delivered.
type Notification struct {
	InApp            bool `json:"in_app"`
	Email            bool `json:"email"`
	Sound            bool `json:"sound"`
	ReminderLeadDays int  `json:"reminder_lead_days"`
}

func defaultNotification() Notification {
	return Notification{InApp: true, Email: false, Sound: true, ReminderLeadDays: 3}
}

// Store holds both preference families. Every write is a flock-guarded
// read-modify-write against the latest persisted value, so concurrent
// writes from another instance are not clobbered.
type Store struct {
	accPath   string
	notifPath string
	lock      *store.FileLock

	mu    sync.RWMutex
	acc   Accessibility
	notif Notification
}

func NewStore(basePath string, lock *store.FileLock) (*Store, error) {
	s := &Store{
		accPath:   filepath.Join(basePath, store.AccessibilityFile),
		notifPath: filepath.Join(basePath, store.NotifyPreferencesFile),
		lock:      lock,
		notif:     defaultNotification(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads both preference files. A missing file means defaults.
func (s *Store) Reload() error {
	acc := Accessibility{}
	if _, err := store.ReadJSON(s.accPath, &acc); err != nil {
		return err
	}

	notif := defaultNotification()
	if _, err := store.ReadJSON(s.notifPath, &notif); err != nil {
		return err
	}

	s.mu.Lock()
	s.acc = acc
	s.notif = notif
	s.mu.Unlock()
	return nil
}

func (s *Store) Accessibility() Accessibility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acc
}

func (s *Store) Notification() Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notif
}

// SetAccessibility persists mutated accessibility preferences.
func (s *Store) SetAccessibility(mutate func(*Accessibility)) error {
	return s.lock.WithLock(func() error {
		acc := Accessibility{}
		if _, err := store.ReadJSON(s.accPath, &acc); err != nil {
			return err
		}
		mutate(&acc)
		if err := store.WriteJSON(s.accPath, &acc); err != nil {
			return err
		}

		s.mu.Lock()
		s.acc = acc
		s.mu.Unlock()
		return nil
	})
}

// SetNotification persists mutated notification preferences.
func (s *Store) SetNotification(mutate func(*Notification)) error {
	return s.lock.WithLock(func() error {
		notif := defaultNotification()
		if _, err := store.ReadJSON(s.notifPath, &notif); err != nil {
			return err
		}
		mutate(&notif)
		if err := store.WriteJSON(s.notifPath, &notif); err != nil {
			return err
		}

		s.mu.Lock()
		s.notif = notif
		s.mu.Unlock()
		return nil
	})
}
