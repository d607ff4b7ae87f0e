package narrate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is the quiet window required before speaking. A burst
// of interaction signals inside the window speaks at most once, for the
// last signal's text.
const DefaultDebounce = 300 * time.Millisecond

// Engine is the passive narration engine. While enabled, every
// interaction signal resolves speakable text and arms the debounce
// timer; the text is spoken only when no further signal arrives within
// the window. Disabling cancels the pending timer and any in-flight
// utterance.
type Engine struct {
	speaker  Speaker
	debounce time.Duration

	mu      sync.Mutex
	enabled bool
	timer   *time.Timer
	pending string
}

func NewEngine(speaker Speaker, debounce time.Duration) *Engine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Engine{speaker: speaker, debounce: debounce}
}

func (e *Engine) Enable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = true
}

// Disable turns narration off immediately: the pending debounce timer
// is cleared and the in-flight utterance is cancelled.
func (e *Engine) Disable() {
	e.mu.Lock()
	e.enabled = false
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.pending = ""
	e.mu.Unlock()

	e.speaker.Stop()
}

func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Interact feeds one interaction signal (hover-like or focus-like).
// Each signal supersedes the previous pending text and restarts the
// debounce window.
func (e *Engine) Interact(n *Node) {
	text := Resolve(n)
	if text == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.enabled {
		return
	}

	e.pending = text
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.speakPending)
}

func (e *Engine) speakPending() {
	e.mu.Lock()
	if !e.enabled || e.pending == "" {
		e.mu.Unlock()
		return
	}
	text := e.pending
	e.pending = ""
	e.timer = nil
	e.mu.Unlock()

	if err := e.speaker.Speak(context.Background(), text); err != nil {
		slog.Warn("Narration failed", "error", err)
	}
}
