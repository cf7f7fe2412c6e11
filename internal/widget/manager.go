// Package widget implements the eFP viewer widget: per-instance study
// selection on top of the species resolver, the shared studies cache and
// an image loader.
package widget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/efp-view/internal/bar"
	"github.com/ziadkadry99/efp-view/internal/imageloader"
	"github.com/ziadkadry99/efp-view/internal/observability"
	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

// Manager owns the mounted widget instances.
type Manager struct {
	table       *species.Table
	cache       *studies.Cache
	urls        bar.URLs
	prober      imageloader.Prober
	idleTimeout time.Duration
	logger      zerolog.Logger
	now         func() time.Time

	mu      sync.Mutex
	widgets map[string]*Widget
}

// Options configures a Manager.
type Options struct {
	Table       *species.Table // Defaults to species.Default.
	Cache       *studies.Cache
	URLs        bar.URLs
	Prober      imageloader.Prober
	IdleTimeout time.Duration // Zero disables sweeping.
	Logger      zerolog.Logger
}

// NewManager creates a Manager.
func NewManager(opts Options) *Manager {
	table := opts.Table
	if table == nil {
		table = species.Default
	}
	return &Manager{
		table:       table,
		cache:       opts.Cache,
		urls:        opts.URLs,
		prober:      opts.Prober,
		idleTimeout: opts.IdleTimeout,
		logger:      opts.Logger,
		now:         time.Now,
		widgets:     make(map[string]*Widget),
	}
}

// Mount creates a widget for gene. Unknown species mount fine and render
// as unsupported without touching the network.
func (m *Manager) Mount(gene species.GeneRecord) *Widget {
	w := &Widget{
		ID:    uuid.New().String(),
		m:     m,
		image: imageloader.New(m.prober),
	}
	w.setGeneLocked(gene)

	m.mu.Lock()
	w.lastSeen = m.now()
	m.widgets[w.ID] = w
	m.mu.Unlock()

	observability.WidgetsMounted.Inc()
	m.logger.Debug().Str("widget", w.ID).Str("species", gene.SpeciesKey).Str("gene", gene.ID).Msg("widget mounted")
	return w
}

// Get returns a mounted widget and marks it as recently used.
func (m *Manager) Get(id string) (*Widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.widgets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWidget, id)
	}
	w.lastSeen = m.now()
	return w, nil
}

// Unmount discards a widget.
func (m *Manager) Unmount(id string) error {
	m.mu.Lock()
	w, ok := m.widgets[id]
	delete(m.widgets, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWidget, id)
	}
	w.image.Reset()
	observability.WidgetsMounted.Dec()
	return nil
}

// Len returns the number of mounted widgets.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.widgets)
}

// Sweep unmounts widgets idle for longer than the idle timeout and
// returns how many were removed.
func (m *Manager) Sweep() int {
	if m.idleTimeout <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.idleTimeout)
	var idle []string
	m.mu.Lock()
	for id, w := range m.widgets {
		if w.lastSeen.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.Unlock()

	removed := 0
	for _, id := range idle {
		if m.Unmount(id) == nil {
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if m.idleTimeout <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug().Int("removed", n).Msg("swept idle widgets")
			}
		}
	}
}
