package notify

import (
	"sync"
	"time"

	"github.com/dawsen1208/shelfd/internal/store"
)

type knownIDs struct {
	// ID -> first-seen timestamp. The set only ever grows.
	IDs map[string]time.Time `json:"ids"`
}

// KnownSet is the durable set of event IDs that have ever been
// observed. An ID is persisted the instant its event is first merged,
// before any alert fires: at most one alert per ID, never at least one.
type KnownSet struct {
	path string
	lock *store.FileLock

	mu    sync.RWMutex
	state knownIDs
}

func NewKnownSet(path string, lock *store.FileLock) (*KnownSet, error) {
	s := &KnownSet{
		path:  path,
		lock:  lock,
		state: knownIDs{IDs: make(map[string]time.Time)},
	}
	if _, err := store.ReadJSON(path, &s.state); err != nil {
		return nil, err
	}
	if s.state.IDs == nil {
		s.state.IDs = make(map[string]time.Time)
	}
	return s, nil
}

func (s *KnownSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.state.IDs[id]
	return ok
}

func (s *KnownSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.IDs)
}

// Add marks ids as seen and persists immediately. The on-disk file is
// reloaded under the lock and unioned with the in-memory set, so a
// concurrent instance adding different IDs converges instead of being
// clobbered. Union is commutative and idempotent per ID.
func (s *KnownSet) Add(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return s.lock.WithLock(func() error {
		onDisk := knownIDs{IDs: make(map[string]time.Time)}
		if _, err := store.ReadJSON(s.path, &onDisk); err != nil {
			return err
		}
		if onDisk.IDs == nil {
			onDisk.IDs = make(map[string]time.Time)
		}

		s.mu.Lock()
		for id, seen := range s.state.IDs {
			if _, ok := onDisk.IDs[id]; !ok {
				onDisk.IDs[id] = seen
			}
		}
		now := time.Now()
		for _, id := range ids {
			if _, ok := onDisk.IDs[id]; !ok {
				onDisk.IDs[id] = now
			}
		}
		s.state = onDisk
		s.mu.Unlock()

		return store.WriteJSON(s.path, &onDisk)
	})
}
