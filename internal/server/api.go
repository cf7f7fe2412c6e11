package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

type speciesResponse struct {
	Key             string           `json:"key"`
	Genome          string           `json:"genome"`
	Rule            species.RuleKind `json:"rule"`
	AliasOf         string           `json:"alias_of,omitempty"`
	CorrectsStudies bool             `json:"corrects_studies"`
}

type resolveResponse struct {
	Resolvable     bool             `json:"resolvable"`
	Species        string           `json:"species"`
	Genome         string           `json:"genome,omitempty"`
	Rule           species.RuleKind `json:"rule,omitempty"`
	ExternalGeneID string           `json:"external_gene_id,omitempty"`
	Error          string           `json:"error,omitempty"`
}

type studiesResponse struct {
	Species string          `json:"species"`
	Genome  string          `json:"genome"`
	State   studies.State   `json:"state"`
	Studies []species.Study `json:"studies"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) registerAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/species", s.handleListSpecies)
		r.Get("/resolve", s.handleResolve)
		r.Get("/species/{species}/studies", s.handleStudies)
		r.Post("/species/{species}/studies/retry", s.handleStudiesRetry)
	})
}

func (s *Server) handleListSpecies(w http.ResponseWriter, r *http.Request) {
	keys := s.table.Keys()
	out := make([]speciesResponse, 0, len(keys))
	for _, key := range keys {
		e, _ := s.table.Lookup(key)
		alias, _ := s.table.AliasOf(key)
		out = append(out, speciesResponse{
			Key:             key,
			Genome:          e.Genome,
			Rule:            e.Gene.Kind(),
			AliasOf:         alias,
			CorrectsStudies: e.Fix != nil,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	gene, err := geneFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := resolveResponse{Species: gene.SpeciesKey}
	e, err := s.table.Resolve(gene)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Resolvable = true
	resp.Genome = e.Genome
	resp.Rule = e.Gene.Kind()
	if id, err := species.FormatExternalGeneID(e, gene); err != nil {
		resp.Error = err.Error()
	} else {
		resp.ExternalGeneID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStudies(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "species")
	e, ok := s.table.Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown species "+key)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()
	snap, err := s.cache.Wait(ctx, e.Genome)

	resp := studiesResponse{Species: key, Genome: e.Genome, State: snap.State, Studies: []species.Study{}}
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusAccepted, resp)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	case snap.State == studies.StateFailed:
		resp.Error = snap.Err.Error()
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		resp.Studies = species.ApplyStudyCorrections(e, snap.Studies)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleStudiesRetry(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "species")
	e, ok := s.table.Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown species "+key)
		return
	}
	snap := s.cache.Retry(e.Genome)
	writeJSON(w, http.StatusAccepted, studiesResponse{Species: key, Genome: e.Genome, State: snap.State, Studies: []species.Study{}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
