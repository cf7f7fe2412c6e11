// Package imageloader tracks the loading state of a single eFP image URL.
package imageloader

import (
	"context"
	"sync"

	"github.com/ziadkadry99/efp-view/internal/observability"
)

// State is the state of the bound image.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Prober retrieves an image and reports whether it loaded.
type Prober interface {
	ProbeImage(ctx context.Context, url string) error
}

// Status is a snapshot of the loader.
type Status struct {
	URL   string `json:"url"`
	State State  `json:"state"`
	Err   error  `json:"-"`
}

// Loader is bound to at most one URL at a time. Rebinding resets it to
// Loading; results for a URL that is no longer bound are discarded.
type Loader struct {
	prober Prober

	mu     sync.Mutex
	url    string
	state  State
	err    error
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an idle loader.
func New(prober Prober) *Loader {
	return &Loader{prober: prober, state: StateIdle}
}

// Set binds the loader to url. Binding the current URL again is a no-op.
func (l *Loader) Set(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if url == l.url && l.state != StateIdle {
		return
	}
	if l.cancel != nil {
		l.cancel()
	}

	l.gen++
	l.url = url
	l.state = StateLoading
	l.err = nil
	l.done = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	go l.probe(ctx, l.gen, url, l.done)
}

// Reset unbinds the loader and abandons any load in flight.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.url = ""
	l.state = StateIdle
	l.err = nil
}

// Status returns the current state.
func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Status{URL: l.url, State: l.state, Err: l.err}
}

// Wait blocks until the currently bound URL finishes loading or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Status, error) {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()

	if done != nil {
		select {
		case <-ctx.Done():
			return l.Status(), ctx.Err()
		case <-done:
		}
	}
	return l.Status(), nil
}

func (l *Loader) probe(ctx context.Context, gen uint64, url string, done chan struct{}) {
	defer close(done)
	err := l.prober.ProbeImage(ctx, url)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return
	}
	if err != nil {
		observability.ImageProbes.WithLabelValues("failed").Inc()
		l.state = StateFailed
		l.err = err
		return
	}
	observability.ImageProbes.WithLabelValues("loaded").Inc()
	l.state = StateLoaded
}
