// Package studies caches BAR study lists per genome slug.
//
// The first request for a genome starts one background fetch; callers see
// Loading until it completes, then Loaded or Failed. A failed genome stays
// failed until Retry is called.
package studies

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/efp-view/internal/observability"
	"github.com/ziadkadry99/efp-view/internal/species"
)

// State is the lifecycle of a genome's study list.
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Fetcher retrieves the sorted, labelled study list for a genome.
type Fetcher interface {
	Studies(ctx context.Context, genome string) ([]species.Study, error)
}

// Snapshot is a point-in-time copy of a genome's cache entry.
type Snapshot struct {
	Genome    string
	State     State
	Studies   []species.Study
	Err       error
	FetchedAt time.Time
	InFlight  bool
}

type entry struct {
	state     State
	studies   []species.Study
	err       error
	fetchedAt time.Time
	inFlight  bool
	done      chan struct{}
}

// Cache holds one entry per genome slug.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a cache. A zero ttl keeps loaded lists forever.
func New(fetcher Fetcher, ttl time.Duration, logger zerolog.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Get returns the current snapshot for genome, starting a fetch if the
// genome has never been requested or its list has expired.
func (c *Cache) Get(genome string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[genome]
	if !ok {
		e = &entry{state: StateLoading}
		c.entries[genome] = e
		c.startLocked(genome, e)
	} else if c.expiredLocked(e) {
		// Serve the stale list while it refreshes.
		c.startLocked(genome, e)
	}
	return snapshot(genome, e)
}

// Peek returns the snapshot without starting a fetch.
func (c *Cache) Peek(genome string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[genome]
	if !ok {
		return Snapshot{}, false
	}
	return snapshot(genome, e), true
}

// Retry refetches a failed genome. Other states are left alone.
func (c *Cache) Retry(genome string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[genome]
	if !ok {
		e = &entry{state: StateLoading}
		c.entries[genome] = e
		c.startLocked(genome, e)
		return snapshot(genome, e)
	}
	if e.state == StateFailed && !e.inFlight {
		e.state = StateLoading
		e.err = nil
		c.startLocked(genome, e)
	}
	return snapshot(genome, e)
}

// Wait blocks until genome has no fetch in flight or ctx is done.
func (c *Cache) Wait(ctx context.Context, genome string) (Snapshot, error) {
	snap := c.Get(genome)
	for snap.InFlight {
		c.mu.Lock()
		done := c.entries[genome].done
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-done:
		}
		snap, _ = c.Peek(genome)
	}
	return snap, nil
}

func (c *Cache) expiredLocked(e *entry) bool {
	return c.ttl > 0 && e.state == StateLoaded && !e.inFlight && c.now().Sub(e.fetchedAt) > c.ttl
}

func (c *Cache) startLocked(genome string, e *entry) {
	e.inFlight = true
	e.done = make(chan struct{})
	go c.fetch(genome, e.done)
}

func (c *Cache) fetch(genome string, done chan struct{}) {
	start := c.now()
	studies, err := c.fetcher.Studies(context.Background(), genome)
	observability.StudiesFetchDuration.WithLabelValues(genome).Observe(time.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(done)

	e := c.entries[genome]
	e.inFlight = false

	if err != nil {
		observability.StudiesFetches.WithLabelValues(genome, "error").Inc()
		c.logger.Warn().Err(err).Str("genome", genome).Msg("fetching eFP studies failed")
		if e.state == StateLoaded {
			// Keep serving the stale list.
			return
		}
		e.state = StateFailed
		e.err = err
		return
	}

	observability.StudiesFetches.WithLabelValues(genome, "ok").Inc()
	c.logger.Debug().Str("genome", genome).Int("studies", len(studies)).Msg("fetched eFP studies")
	e.state = StateLoaded
	e.studies = studies
	e.err = nil
	e.fetchedAt = c.now()
}

func snapshot(genome string, e *entry) Snapshot {
	return Snapshot{
		Genome:    genome,
		State:     e.state,
		Studies:   slices.Clone(e.studies),
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		InFlight:  e.inFlight,
	}
}
