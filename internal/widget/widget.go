package widget

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ziadkadry99/efp-view/internal/imageloader"
	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

// Status summarises what a widget can currently show.
type Status string

const (
	StatusUnsupported       Status = "unsupported"
	StatusIncompleteMapping Status = "incomplete_mapping"
	StatusLoadingStudies    Status = "loading_studies"
	StatusStudiesFailed     Status = "studies_failed"
	StatusNoStudies         Status = "no_studies"
	StatusReady             Status = "ready"
)

// View is everything needed to render a widget.
type View struct {
	WidgetID       string             `json:"widget_id"`
	Status         Status             `json:"status"`
	Gene           species.GeneRecord `json:"gene"`
	Genome         string             `json:"genome,omitempty"`
	ExternalGeneID string             `json:"external_gene_id,omitempty"`
	Message        string             `json:"message,omitempty"`
	Studies        []species.Study    `json:"studies,omitempty"`
	Study          string             `json:"study,omitempty"`
	ImageURL       string             `json:"image_url,omitempty"`
	DetailsURL     string             `json:"details_url,omitempty"`
	Image          imageloader.State  `json:"image_state,omitempty"`
}

// Loading reports whether the view is waiting on the network.
func (v View) Loading() bool {
	return v.Status == StatusLoadingStudies || (v.Status == StatusReady && v.Image == imageloader.StateLoading)
}

// Widget is one mounted viewer. Its selection state is private to it;
// the study lists it reads come from the manager's shared cache.
type Widget struct {
	ID string

	m        *Manager
	image    *imageloader.Loader
	lastSeen time.Time // guarded by m.mu

	mu         sync.Mutex
	gene       species.GeneRecord
	entry      *species.Entry
	externalID string
	resolveErr error
	formatErr  error
	current    string
}

// Gene returns the gene the widget is showing.
func (w *Widget) Gene() species.GeneRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gene
}

// SetGene switches the widget to another gene. Changing genome discards
// the selected study and the bound image.
func (w *Widget) SetGene(gene species.GeneRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.setGeneLocked(gene)
}

func (w *Widget) setGeneLocked(gene species.GeneRecord) {
	oldGenome := w.genomeLocked()

	w.gene = gene
	w.entry, w.resolveErr = w.m.table.Resolve(gene)
	w.externalID, w.formatErr = "", nil
	if w.entry != nil {
		w.externalID, w.formatErr = species.FormatExternalGeneID(w.entry, gene)
	}

	if w.genomeLocked() != oldGenome {
		w.current = ""
		w.image.Reset()
	}
	if w.fetchableLocked() {
		w.m.cache.Get(w.entry.Genome)
	}
}

func (w *Widget) genomeLocked() string {
	if w.entry == nil {
		return ""
	}
	return w.entry.Genome
}

func (w *Widget) fetchableLocked() bool {
	return w.entry != nil && w.formatErr == nil
}

// Select records the user's study choice. It never refetches studies.
func (w *Widget) Select(study string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.fetchableLocked() {
		return ErrNotReady
	}
	snap, ok := w.m.cache.Peek(w.entry.Genome)
	if !ok || snap.State != studies.StateLoaded {
		return ErrNotReady
	}
	corrected := species.ApplyStudyCorrections(w.entry, snap.Studies)
	if !slices.ContainsFunc(corrected, func(s species.Study) bool { return s.Value == study }) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownStudy, study, w.entry.Genome)
	}
	w.current = study
	return nil
}

// Retry refetches the study list after a failure.
func (w *Widget) Retry() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fetchableLocked() {
		w.m.cache.Retry(w.entry.Genome)
	}
}

// View computes the current view and binds the image loader to the
// selected study's image.
func (w *Widget) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{WidgetID: w.ID, Gene: w.gene}

	if w.entry == nil {
		v.Status = StatusUnsupported
		v.Message = fmt.Sprintf("Can't find eFP browser for %s", w.gene.SpeciesKey)
		return v
	}
	v.Genome = w.entry.Genome

	if w.formatErr != nil {
		v.Status = StatusIncompleteMapping
		v.Message = fmt.Sprintf("No BAR identifier mapping for %s yet", w.gene.ID)
		return v
	}
	v.ExternalGeneID = w.externalID

	snap := w.m.cache.Get(w.entry.Genome)
	switch snap.State {
	case studies.StateLoading:
		v.Status = StatusLoadingStudies
		return v
	case studies.StateFailed:
		v.Status = StatusStudiesFailed
		v.Message = fmt.Sprintf("Unable to load eFP studies for %s", w.entry.Genome)
		return v
	}

	v.Studies = species.ApplyStudyCorrections(w.entry, snap.Studies)
	if len(v.Studies) == 0 {
		v.Status = StatusNoStudies
		v.Message = fmt.Sprintf("BAR lists no eFP studies for %s", w.entry.Genome)
		return v
	}

	v.Status = StatusReady
	v.Study = v.Studies[0].Value
	if w.current != "" && slices.ContainsFunc(v.Studies, func(s species.Study) bool { return s.Value == w.current }) {
		v.Study = w.current
	}
	v.ImageURL = w.m.urls.Image(v.Genome, v.Study, v.ExternalGeneID)
	v.DetailsURL = w.m.urls.Details(v.Genome, v.Study, v.ExternalGeneID)

	w.image.Set(v.ImageURL)
	v.Image = w.image.Status().State
	return v
}

// Settle waits for the study list and then the image to finish loading,
// and returns the resulting view.
func (w *Widget) Settle(ctx context.Context) (View, error) {
	w.mu.Lock()
	genome, fetchable := w.genomeLocked(), w.fetchableLocked()
	w.mu.Unlock()

	if fetchable {
		if _, err := w.m.cache.Wait(ctx, genome); err != nil {
			return w.View(), err
		}
	}
	v := w.View()
	if v.Status != StatusReady {
		return v, nil
	}
	if _, err := w.image.Wait(ctx); err != nil {
		return w.View(), err
	}
	return w.View(), nil
}
