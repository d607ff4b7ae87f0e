package notify

import (
	"context"
	"log/slog"
	"sync"
)

// AlertFunc receives each newly merged event, in delta order.
type AlertFunc func(ctx context.Context, evt Event)

// Engine merges candidate events from the fetchers against the durable
// known-ID set and drives alerts at most once per event ID.
//
// A single mutex serializes Merge, so fetch completions may arrive in
// any order: correctness depends only on the known set at merge time,
// which makes merges commutative and idempotent per ID.
type Engine struct {
	known *KnownSet
	log   *Log

	mu     sync.Mutex
	unread int
	subs   []AlertFunc
}

func NewEngine(known *KnownSet, log *Log) *Engine {
	return &Engine{known: known, log: log}
}

// OnAlert registers a callback for delta events. Callbacks run
// synchronously, in registration order, after the merge is durable.
func (e *Engine) OnAlert(fn AlertFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Merge filters candidates to unseen events, persists them, and emits
// alerts for the survivors. Returns the delta. A cycle with no
// survivors performs no writes and emits nothing.
func (e *Engine) Merge(ctx context.Context, candidates []Event) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	delta := make([]Event, 0, len(candidates))
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			slog.Error("Dropping candidate event without ID", "kind", c.Kind, "subject", c.SubjectTitle)
			continue
		}
		if e.known.Contains(c.ID) {
			continue
		}
		c.derive()
		delta = append(delta, c)
		ids = append(ids, c.ID)
	}

	if len(delta) == 0 {
		return nil
	}

	// Mark IDs known before anything else. A crash between this write
	// and the alerts loses notifications, never duplicates them.
	if err := e.known.Add(ids...); err != nil {
		slog.Error("Failed to persist known IDs, durability not guaranteed", "error", err)
	}
	if err := e.log.Prepend(delta); err != nil {
		slog.Error("Failed to persist notification log", "error", err)
	}

	e.unread += len(delta)

	for _, evt := range delta {
		for _, fn := range e.subs {
			fn(ctx, evt)
		}
	}

	return delta
}

// UnreadCount reports unseen notifications for this process. The badge
// is per-process and never persisted; each instance resets on its own.
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unread
}

// Log returns the materialized notification log, newest first.
func (e *Engine) Log() []Event {
	return e.log.Entries()
}

// AcknowledgeAll resets the unread counter and marks every current log
// entry as known. Idempotent.
func (e *Engine) AcknowledgeAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unread = 0

	entries := e.log.Entries()
	ids := make([]string, 0, len(entries))
	for _, evt := range entries {
		if !e.known.Contains(evt.ID) {
			ids = append(ids, evt.ID)
		}
	}
	return e.known.Add(ids...)
}

// DismissReminder removes one reminder entry from the log. Its ID stays
// in the known set forever, so a later poll reporting the same reminder
// never re-alerts.
func (e *Engine) DismissReminder(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if evt, ok := e.log.Find(id); ok && evt.Kind != KindReviewReminder {
		slog.Debug("Dismiss ignored for non-reminder entry", "id", id, "kind", evt.Kind)
		return nil
	}

	if err := e.known.Add(id); err != nil {
		return err
	}
	return e.log.Remove(id)
}
