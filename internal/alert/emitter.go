package alert

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dawsen1208/shelfd/internal/notify"
	"github.com/dawsen1208/shelfd/internal/prefs"
)

// Emitter fans one event out to every registered channel, honoring the
// user's notification preferences at emit time. Channel failures are
// logged and swallowed: an alert is best-effort once the event is
// durably recorded.
type Emitter struct {
	prefs *prefs.Store

	mu       sync.Mutex
	channels map[string]Channel
}

func NewEmitter(p *prefs.Store) *Emitter {
	return &Emitter{
		prefs:    p,
		channels: make(map[string]Channel),
	}
}

// Register adds a delivery channel. Re-registering a name replaces the
// previous channel.
func (e *Emitter) Register(ch Channel) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channels[ch.Name()] = ch
}

// Unregister removes a channel by name. Unknown names are a no-op.
func (e *Emitter) Unregister(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.channels, name)
}

// Emit delivers one event to all channels. Preferences are read per
// emission, so a preference change picked up by the synchronizer takes
// effect on the very next alert.
func (e *Emitter) Emit(ctx context.Context, evt notify.Event) {
	notif := e.prefs.Notification()
	if !notif.InApp {
		slog.Debug("In-app alerts disabled, suppressing", "id", evt.ID)
		return
	}

	opts := Options{Sound: notif.Sound}

	e.mu.Lock()
	channels := make([]Channel, 0, len(e.channels))
	for _, ch := range e.channels {
		channels = append(channels, ch)
	}
	e.mu.Unlock()

	for _, ch := range channels {
		if err := ch.Notify(ctx, evt, opts); err != nil {
			slog.Warn("Alert delivery failed", "channel", ch.Name(), "id", evt.ID, "error", err)
		}
	}
}
