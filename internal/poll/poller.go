package poll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dawsen1208/shelfd/internal/errors"
	"github.com/dawsen1208/shelfd/internal/fetch"
	"github.com/dawsen1208/shelfd/internal/notify"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"
)

// Fetcher is one polled event source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, token string) ([]notify.Event, error)
}

// Merger consumes candidate events. Satisfied by *notify.Engine.
type Merger interface {
	Merge(ctx context.Context, candidates []notify.Event) []notify.Event
}

// Poller runs recurring fetch cycles on a cron-style schedule, plus one
// immediately on Start and one per Kick. Overlapping cycles are not
// prevented: the merge engine tolerates out-of-order completion.
type Poller struct {
	schedule cron.Schedule
	fetchers []Fetcher
	token    fetch.TokenSource
	engine   Merger

	fetchTimeout time.Duration

	mu       sync.Mutex
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
	kick     chan struct{}
	disabled map[string]bool
	wg       sync.WaitGroup
}

func NewPoller(schedule string, fetchers []Fetcher, token fetch.TokenSource, engine Merger, fetchTimeout time.Duration) (*Poller, error) {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", schedule, err)
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}

	return &Poller{
		schedule:     sched,
		fetchers:     fetchers,
		token:        token,
		engine:       engine,
		fetchTimeout: fetchTimeout,
		kick:         make(chan struct{}, 1),
		disabled:     make(map[string]bool),
	}, nil
}

// Start begins polling. The first cycle runs immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(p.ctx)

	slog.Info("Poller started")
	return nil
}

// Stop cancels polling. Safe to call at any time, including mid-cycle:
// an in-flight fetch whose completion arrives after Stop is discarded,
// not merged.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
	slog.Info("Poller stopped")
}

// Kick requests an opportunistic cycle, e.g. on a focus-regained
// signal. Coalesces when one is already queued.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// IsRunning reports whether the poll loop is active.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	p.runCycle(ctx)

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-p.kick:
			timer.Stop()
			p.runCycle(ctx)
		case <-timer.C:
			p.runCycle(ctx)
		}
	}
}

// runCycle fans out to all enabled fetchers. Each completion merges
// independently; merge order does not matter because the known set
// makes merges commutative.
func (p *Poller) runCycle(ctx context.Context) {
	token := p.token.Token()
	if token == "" {
		slog.Debug("Poll cycle skipped, no auth token")
		return
	}

	runID := ulid.Make().String()
	slog.Debug("Poll cycle starting", "run_id", runID)

	var wg sync.WaitGroup
	for _, f := range p.fetchers {
		if p.isDisabled(f.Name()) {
			continue
		}

		wg.Add(1)
		go func(f Fetcher) {
			defer wg.Done()
			p.runFetcher(ctx, f, token, runID)
		}(f)
	}
	wg.Wait()
}

func (p *Poller) runFetcher(ctx context.Context, f Fetcher, token, runID string) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	events, err := f.Fetch(fetchCtx, token)
	if err != nil {
		if errors.IsUnauthorized(err) {
			// Expected for non-privileged accounts. Disable the source
			// instead of retrying forever; no user-facing error.
			slog.Info("Source not authorized, disabling", "source", f.Name(), "run_id", runID)
			p.disable(f.Name())
			return
		}
		slog.Warn("Fetch failed, skipping cycle for source", "source", f.Name(), "run_id", runID, "error", err)
		return
	}

	// A completion landing after Stop must be discarded, not merged.
	if ctx.Err() != nil {
		slog.Debug("Discarding fetch result after stop", "source", f.Name(), "run_id", runID)
		return
	}

	delta := p.engine.Merge(ctx, events)
	if len(delta) > 0 {
		slog.Info("Merged new notifications", "source", f.Name(), "run_id", runID, "count", len(delta))
	}
}

func (p *Poller) isDisabled(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disabled[name]
}

func (p *Poller) disable(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disabled[name] = true
}
