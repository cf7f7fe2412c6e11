package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/widget"
)

func (s *Server) registerWidgetRoutes(r chi.Router) {
	r.Get("/", s.handleDemo)
	r.Get("/view", s.handleMount)
	r.Route("/widgets/{wid}", func(r chi.Router) {
		r.Get("/", s.handleWidget)
		r.Delete("/", s.handleUnmount)
		r.Get("/state", s.handleWidgetState)
		r.Post("/study", s.handleSelectStudy)
		r.Post("/retry", s.handleRetry)
	})
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderDemo(w); err != nil {
		s.logger.Error().Err(err).Msg("rendering demo page")
	}
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	gene, err := geneFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wg := s.widgets.Mount(gene)

	http.Redirect(w, r, widgetPath(wg.ID, r.URL.Query()), http.StatusSeeOther)
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	wg, ok := s.lookupWidget(w, r)
	if !ok {
		return
	}

	v := wg.View()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var err error
	if r.URL.Query().Get("fragment") != "" {
		err = s.renderer.RenderWidget(w, v)
	} else {
		err = s.renderer.RenderPage(w, v, r.URL.Query().Get("tab"))
	}
	if err != nil {
		s.logger.Error().Err(err).Str("widget", wg.ID).Msg("rendering widget")
	}
}

func (s *Server) handleWidgetState(w http.ResponseWriter, r *http.Request) {
	wg, ok := s.lookupWidget(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("wait") == "" {
		writeJSON(w, http.StatusOK, wg.View())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()
	v, err := wg.Settle(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSelectStudy(w http.ResponseWriter, r *http.Request) {
	wg, ok := s.lookupWidget(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err := wg.Select(r.PostForm.Get("study"))
	switch {
	case errors.Is(err, widget.ErrUnknownStudy):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, widget.ErrNotReady):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, widgetPath(wg.ID, r.PostForm), http.StatusSeeOther)
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	wg, ok := s.lookupWidget(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	wg.Retry()
	http.Redirect(w, r, widgetPath(wg.ID, r.PostForm), http.StatusSeeOther)
}

func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := s.widgets.Unmount(chi.URLParam(r, "wid")); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupWidget(w http.ResponseWriter, r *http.Request) (*widget.Widget, bool) {
	wg, err := s.widgets.Get(chi.URLParam(r, "wid"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return nil, false
	}
	return wg, true
}

// widgetPath is the widget URL that keeps the tab and fragment parameters
// found in params.
func widgetPath(id string, params url.Values) string {
	q := url.Values{}
	if tab := params.Get("tab"); tab != "" {
		q.Set("tab", tab)
	}
	if params.Get("fragment") != "" {
		q.Set("fragment", "1")
	}
	if len(q) == 0 {
		return "/widgets/" + id
	}
	return "/widgets/" + id + "?" + q.Encode()
}

// geneFromQuery reads a gene record from species, id, repeated synonym and
// repeated xref=source:id parameters.
func geneFromQuery(q url.Values) (species.GeneRecord, error) {
	gene := species.GeneRecord{
		ID:         strings.TrimSpace(q.Get("id")),
		SpeciesKey: strings.TrimSpace(q.Get("species")),
		Synonyms:   q["synonym"],
	}
	if gene.ID == "" || gene.SpeciesKey == "" {
		return gene, errors.New("id and species are required")
	}
	for _, x := range q["xref"] {
		source, id, ok := strings.Cut(x, ":")
		if !ok || source == "" || id == "" {
			return gene, errors.New("xref must be source:id")
		}
		if gene.Xrefs == nil {
			gene.Xrefs = make(map[string]string)
		}
		gene.Xrefs[source] = id
	}
	return gene, nil
}
