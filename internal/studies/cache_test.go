package studies

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/efp-view/internal/species"
)

// fakeFetcher returns queued results per genome and counts calls.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	results map[string][]result
	gate    chan struct{}
}

type result struct {
	studies []species.Study
	err     error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: make(map[string]int), results: make(map[string][]result)}
}

func (f *fakeFetcher) push(genome string, studies []species.Study, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[genome] = append(f.results[genome], result{studies, err})
}

func (f *fakeFetcher) Studies(ctx context.Context, genome string) ([]species.Study, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[genome]++
	q := f.results[genome]
	if len(q) == 0 {
		return nil, errors.New("no result queued")
	}
	r := q[0]
	if len(q) > 1 {
		f.results[genome] = q[1:]
	}
	return r.studies, r.err
}

func (f *fakeFetcher) callCount(genome string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[genome]
}

func newTestCache(f Fetcher, ttl time.Duration) *Cache {
	return New(f, ttl, zerolog.New(io.Discard))
}

func TestGetStartsSingleFetch(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	f.push("maize", []species.Study{species.NewStudy("maize_gdowns")}, nil)
	c := newTestCache(f, 0)

	for i := 0; i < 5; i++ {
		snap := c.Get("maize")
		if snap.State != StateLoading {
			t.Fatalf("state = %q, want loading", snap.State)
		}
		if !snap.InFlight {
			t.Fatal("expected fetch in flight")
		}
	}
	close(f.gate)

	snap, err := c.Wait(t.Context(), "maize")
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if snap.State != StateLoaded {
		t.Fatalf("state = %q, want loaded", snap.State)
	}
	if len(snap.Studies) != 1 || snap.Studies[0].Value != "maize_gdowns" {
		t.Errorf("studies = %+v", snap.Studies)
	}
	if n := f.callCount("maize"); n != 1 {
		t.Errorf("fetch called %d times, want 1", n)
	}

	c.Get("maize")
	if n := f.callCount("maize"); n != 1 {
		t.Errorf("loaded genome refetched: %d calls", n)
	}
}

func TestFailureIsDistinctAndRetryable(t *testing.T) {
	f := newFakeFetcher()
	f.push("soybean", nil, errors.New("connection refused"))
	f.push("soybean", []species.Study{species.NewStudy("soybean")}, nil)
	c := newTestCache(f, 0)

	snap, err := c.Wait(t.Context(), "soybean")
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if snap.State != StateFailed || snap.Err == nil {
		t.Fatalf("expected failed state with error, got %+v", snap)
	}

	// Failed stays failed until retried.
	if snap := c.Get("soybean"); snap.State != StateFailed {
		t.Fatalf("Get after failure: state = %q", snap.State)
	}
	if n := f.callCount("soybean"); n != 1 {
		t.Errorf("fetch called %d times before retry, want 1", n)
	}

	if snap := c.Retry("soybean"); snap.State != StateLoading {
		t.Fatalf("Retry: state = %q, want loading", snap.State)
	}
	snap, err = c.Wait(t.Context(), "soybean")
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if snap.State != StateLoaded {
		t.Fatalf("state after retry = %q", snap.State)
	}
}

func TestRetryIgnoresLoaded(t *testing.T) {
	f := newFakeFetcher()
	f.push("rice", []species.Study{species.NewStudy("rice_mas")}, nil)
	c := newTestCache(f, 0)

	if _, err := c.Wait(t.Context(), "rice"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	c.Retry("rice")
	if _, err := c.Wait(t.Context(), "rice"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if n := f.callCount("rice"); n != 1 {
		t.Errorf("fetch called %d times, want 1", n)
	}
}

func TestExpiredListRefreshes(t *testing.T) {
	f := newFakeFetcher()
	f.push("sorghum", []species.Study{species.NewStudy("old")}, nil)
	f.push("sorghum", []species.Study{species.NewStudy("new")}, nil)
	c := newTestCache(f, time.Hour)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, err := c.Wait(t.Context(), "sorghum"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	now = now.Add(2 * time.Hour)
	snap := c.Get("sorghum")
	if snap.State != StateLoaded || snap.Studies[0].Value != "old" {
		t.Fatalf("expected stale list while refreshing, got %+v", snap)
	}

	snap, err := c.Wait(t.Context(), "sorghum")
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if snap.Studies[0].Value != "new" {
		t.Errorf("studies = %+v, want refreshed list", snap.Studies)
	}
}

func TestWaitHonoursContext(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	defer close(f.gate)
	c := newTestCache(f, 0)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	snap, err := c.Wait(ctx, "maize")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if snap.State != StateLoading {
		t.Errorf("state = %q, want loading", snap.State)
	}
}

func TestPeekDoesNotFetch(t *testing.T) {
	f := newFakeFetcher()
	c := newTestCache(f, 0)

	if _, ok := c.Peek("maize"); ok {
		t.Error("Peek found an entry that was never requested")
	}
	if n := f.callCount("maize"); n != 0 {
		t.Errorf("Peek triggered %d fetches", n)
	}
}
