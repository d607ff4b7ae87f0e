package poll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dawsen1208/shelfd/internal/errors"
	"github.com/dawsen1208/shelfd/internal/fetch"
	"github.com/dawsen1208/shelfd/internal/notify"
)

type fakeFetcher struct {
	name string
	fn   func(ctx context.Context, token string) ([]notify.Event, error)

	mu    sync.Mutex
	calls int
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(ctx context.Context, token string) ([]notify.Event, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(ctx, token)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMerger struct {
	mu     sync.Mutex
	merged []notify.Event
}

func (m *fakeMerger) Merge(_ context.Context, candidates []notify.Event) []notify.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merged = append(m.merged, candidates...)
	return candidates
}

func (m *fakeMerger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.merged)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPollerSkipsCycleWithoutToken(t *testing.T) {
	f := &fakeFetcher{name: "requests", fn: func(context.Context, string) ([]notify.Event, error) {
		return nil, nil
	}}
	m := &fakeMerger{}

	p, err := NewPoller("@every 1h", []Fetcher{f}, fetch.StaticTokenSource(""), m, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()

	time.Sleep(50 * time.Millisecond)
	if f.callCount() != 0 {
		t.Error("Fetcher must not run without an auth token")
	}
}

func TestPollerRunsImmediateCycleAndKick(t *testing.T) {
	f := &fakeFetcher{name: "requests", fn: func(context.Context, string) ([]notify.Event, error) {
		return []notify.Event{{ID: "r1", Kind: notify.KindStatusChange, Status: notify.StatusApproved}}, nil
	}}
	m := &fakeMerger{}

	p, err := NewPoller("@every 1h", []Fetcher{f}, fetch.StaticTokenSource("tok"), m, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()

	waitFor(t, time.Second, func() bool { return f.callCount() == 1 })

	p.Kick()
	waitFor(t, time.Second, func() bool { return f.callCount() == 2 })

	if m.count() == 0 {
		t.Error("Merger should have received candidates")
	}
}

func TestPollerDisablesUnauthorizedSource(t *testing.T) {
	f := &fakeFetcher{name: "requests", fn: func(context.Context, string) ([]notify.Event, error) {
		return nil, errors.Unauthorized("forbidden")
	}}
	ok := &fakeFetcher{name: "reviews", fn: func(context.Context, string) ([]notify.Event, error) {
		return nil, nil
	}}
	m := &fakeMerger{}

	p, err := NewPoller("@every 1h", []Fetcher{f, ok}, fetch.StaticTokenSource("tok"), m, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()

	waitFor(t, time.Second, func() bool { return f.callCount() == 1 })
	waitFor(t, time.Second, func() bool { return ok.callCount() == 1 })

	// Further cycles must skip the unauthorized source, not retry it.
	p.Kick()
	waitFor(t, time.Second, func() bool { return ok.callCount() == 2 })

	if f.callCount() != 1 {
		t.Errorf("Unauthorized source fetched %d times, want 1", f.callCount())
	}
}

func TestPollerDiscardsCompletionAfterStop(t *testing.T) {
	started := make(chan struct{})
	f := &fakeFetcher{name: "requests", fn: func(ctx context.Context, _ string) ([]notify.Event, error) {
		close(started)
		// Completion arrives only after Stop has cancelled the cycle.
		<-ctx.Done()
		return []notify.Event{{ID: "late", Kind: notify.KindStatusChange}}, nil
	}}
	m := &fakeMerger{}

	p, err := NewPoller("@every 1h", []Fetcher{f}, fetch.StaticTokenSource("tok"), m, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	<-started
	p.Stop()

	if m.count() != 0 {
		t.Error("A fetch completing after Stop must be discarded, not merged")
	}
}

func TestPollerTransientFailureKeepsPolling(t *testing.T) {
	f := &fakeFetcher{name: "requests", fn: func(context.Context, string) ([]notify.Event, error) {
		return nil, errors.Transient("connection refused")
	}}
	m := &fakeMerger{}

	p, err := NewPoller("@every 1h", []Fetcher{f}, fetch.StaticTokenSource("tok"), m, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()

	waitFor(t, time.Second, func() bool { return f.callCount() == 1 })

	p.Kick()
	waitFor(t, time.Second, func() bool { return f.callCount() == 2 })

	if m.count() != 0 {
		t.Error("Failed cycles must not merge anything")
	}
}

func TestPollerRejectsBadSchedule(t *testing.T) {
	_, err := NewPoller("not a schedule", nil, fetch.StaticTokenSource(""), &fakeMerger{}, time.Second)
	if err == nil {
		t.Error("Expected error for invalid schedule")
	}
}
