package alert

import (
	"context"

	"github.com/dawsen1208/shelfd/internal/notify"
)

// Channel delivers one transient alert per event to some surface
// (terminal, Telegram, Slack). A failed delivery is a lost alert, not a
// lost dedup guarantee: the event is already durably recorded as seen.
type Channel interface {
	// Name returns the channel name (e.g. "terminal", "telegram").
	Name() string

	// Notify delivers one alert. Options carry per-delivery hints such
	// as whether to play the audio cue.
	Notify(ctx context.Context, evt notify.Event, opts Options) error

	// Health checks if the channel can deliver.
	Health(ctx context.Context) error
}

// Options are per-delivery hints resolved from user preferences.
type Options struct {
	Sound bool
}
