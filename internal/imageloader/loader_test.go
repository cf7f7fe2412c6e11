package imageloader

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// gatedProber blocks each URL until released and fails URLs listed in bad.
type gatedProber struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	bad   map[string]bool
}

func newGatedProber() *gatedProber {
	return &gatedProber{gates: make(map[string]chan struct{}), bad: make(map[string]bool)}
}

func (p *gatedProber) gate(url string) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gates[url]
	if !ok {
		g = make(chan struct{})
		p.gates[url] = g
	}
	return g
}

func (p *gatedProber) release(url string) { close(p.gate(url)) }

func (p *gatedProber) ProbeImage(ctx context.Context, url string) error {
	<-p.gate(url)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bad[url] {
		return errors.New("404")
	}
	return nil
}

func TestLoaderLoads(t *testing.T) {
	p := newGatedProber()
	l := New(p)

	if st := l.Status(); st.State != StateIdle {
		t.Fatalf("initial state = %q", st.State)
	}

	l.Set("a.png")
	if st := l.Status(); st.State != StateLoading || st.URL != "a.png" {
		t.Fatalf("after Set: %+v", st)
	}

	p.release("a.png")
	st, err := l.Wait(t.Context())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if st.State != StateLoaded {
		t.Errorf("state = %q, want loaded", st.State)
	}
}

func TestLoaderFails(t *testing.T) {
	p := newGatedProber()
	p.bad["broken.png"] = true
	p.release("broken.png")
	l := New(p)

	l.Set("broken.png")
	st, _ := l.Wait(t.Context())
	if st.State != StateFailed || st.Err == nil {
		t.Errorf("expected failed with error, got %+v", st)
	}
}

func TestLoaderLastURLWins(t *testing.T) {
	p := newGatedProber()
	p.bad["first.png"] = true
	l := New(p)

	l.Set("first.png")
	l.Set("second.png")
	if st := l.Status(); st.State != StateLoading || st.URL != "second.png" {
		t.Fatalf("after rebinding: %+v", st)
	}

	// The stale failure must not leak into the new binding.
	p.release("first.png")
	p.release("second.png")
	st, err := l.Wait(t.Context())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if st.State != StateLoaded || st.URL != "second.png" {
		t.Errorf("expected second.png loaded, got %+v", st)
	}
}

func TestLoaderSetSameURLIsNoop(t *testing.T) {
	p := newGatedProber()
	p.release("a.png")
	l := New(p)

	l.Set("a.png")
	if _, err := l.Wait(t.Context()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	l.Set("a.png")
	if st := l.Status(); st.State != StateLoaded {
		t.Errorf("rebinding same URL reset state to %q", st.State)
	}
}

func TestLoaderReset(t *testing.T) {
	p := newGatedProber()
	l := New(p)

	l.Set("a.png")
	l.Reset()
	p.release("a.png")

	if st := l.Status(); st.State != StateIdle || st.URL != "" {
		t.Errorf("after Reset: %+v", st)
	}
}
