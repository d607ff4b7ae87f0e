package notify

import (
	"sync"

	"github.com/dawsen1208/shelfd/internal/store"
)

// DefaultLogCap bounds the materialized notification log.
const DefaultLogCap = 30

type logState struct {
	// Newest first. Insertion order, trimmed from the tail.
	Entries []Event `json:"entries"`
}

// Log is the durable, capped, newest-first notification log. Entries
// are immutable once stored; they leave only by cap eviction or an
// explicit dismiss.
type Log struct {
	path string
	lock *store.FileLock
	cap  int

	mu    sync.RWMutex
	state logState
}

func NewLog(path string, lock *store.FileLock, cap int) (*Log, error) {
	if cap <= 0 {
		cap = DefaultLogCap
	}

	l := &Log{path: path, lock: lock, cap: cap}
	if _, err := store.ReadJSON(path, &l.state); err != nil {
		return nil, err
	}
	l.trimLocked()
	return l, nil
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.state.Entries))
	copy(out, l.state.Entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.state.Entries)
}

// Prepend inserts events at the head and persists. The on-disk log is
// reloaded under the lock and merged by ID, so entries written by a
// concurrent instance survive; prepend-with-cap keyed by ID is
// commutative, both instances converge on the same membership.
func (l *Log) Prepend(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	return l.lock.WithLock(func() error {
		onDisk := logState{}
		if _, err := store.ReadJSON(l.path, &onDisk); err != nil {
			return err
		}

		seen := make(map[string]bool, len(events)+len(onDisk.Entries))
		merged := make([]Event, 0, len(events)+len(onDisk.Entries))
		for _, e := range events {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			merged = append(merged, e)
		}
		for _, e := range onDisk.Entries {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			merged = append(merged, e)
		}
		if len(merged) > l.cap {
			merged = merged[:l.cap]
		}

		l.mu.Lock()
		l.state.Entries = merged
		l.mu.Unlock()

		return store.WriteJSON(l.path, &logState{Entries: merged})
	})
}

// Remove deletes one entry by ID and persists. Removing an absent ID is
// a no-op.
func (l *Log) Remove(id string) error {
	return l.lock.WithLock(func() error {
		onDisk := logState{}
		if _, err := store.ReadJSON(l.path, &onDisk); err != nil {
			return err
		}

		kept := onDisk.Entries[:0]
		for _, e := range onDisk.Entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		onDisk.Entries = kept

		l.mu.Lock()
		l.state.Entries = make([]Event, len(kept))
		copy(l.state.Entries, kept)
		l.mu.Unlock()

		return store.WriteJSON(l.path, &onDisk)
	})
}

// Find returns the entry with the given ID, if present.
func (l *Log) Find(id string) (Event, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.state.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

func (l *Log) trimLocked() {
	if len(l.state.Entries) > l.cap {
		l.state.Entries = l.state.Entries[:l.cap]
	}
}
