package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

// geneFromRequest reads species, id and synonyms arguments.
func geneFromRequest(request mcp.CallToolRequest) (species.GeneRecord, error) {
	key, err := request.RequireString("species")
	if err != nil {
		return species.GeneRecord{}, fmt.Errorf("missing required parameter: species")
	}
	id, err := request.RequireString("id")
	if err != nil {
		return species.GeneRecord{}, fmt.Errorf("missing required parameter: id")
	}

	gene := species.GeneRecord{ID: id, SpeciesKey: key}
	for _, syn := range strings.Split(request.GetString("synonyms", ""), ",") {
		if syn = strings.TrimSpace(syn); syn != "" {
			gene.Synonyms = append(gene.Synonyms, syn)
		}
	}
	return gene, nil
}

// handleResolveGene reports the genome slug and BAR gene identifier.
func (s *Server) handleResolveGene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gene, err := geneFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	e, err := s.table.Resolve(gene)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No eFP browser for species %q.", gene.SpeciesKey)), nil
	}
	id, err := species.FormatExternalGeneID(e, gene)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Gene %s cannot be mapped to a BAR identifier yet: %v", gene.ID, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("genome: %s\nbar_gene_id: %s\nrule: %s\n", e.Genome, id, e.Gene.Kind())), nil
}

// handleListStudies lists the corrected studies for a species.
func (s *Server) handleListStudies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("species")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: species"), nil
	}
	e, ok := s.table.Lookup(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No eFP browser for species %q.", key)), nil
	}

	list, err := s.studies(ctx, e)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d studies for %s (genome %s):\n", len(list), key, e.Genome)
	for _, st := range list {
		fmt.Fprintf(&sb, "- %s: %s\n", st.Value, st.Label)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleEFPURLs builds the image and details URLs for a gene.
func (s *Server) handleEFPURLs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gene, err := geneFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := s.table.Resolve(gene)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No eFP browser for species %q.", gene.SpeciesKey)), nil
	}
	id, err := species.FormatExternalGeneID(e, gene)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Gene %s cannot be mapped to a BAR identifier yet: %v", gene.ID, err)), nil
	}

	study := request.GetString("study", "")
	if study == "" {
		list, err := s.studies(ctx, e)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(list) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("BAR lists no studies for %s.", e.Genome)), nil
		}
		study = list[0].Value
	}

	return mcp.NewToolResultText(fmt.Sprintf("study: %s\nimage: %s\ndetails: %s\n",
		study, s.urls.Image(e.Genome, study, id), s.urls.Details(e.Genome, study, id))), nil
}

func (s *Server) studies(ctx context.Context, e *species.Entry) ([]species.Study, error) {
	snap, err := s.cache.Wait(ctx, e.Genome)
	if err != nil {
		return nil, fmt.Errorf("waiting for studies: %w", err)
	}
	if snap.State == studies.StateFailed {
		return nil, fmt.Errorf("could not load studies for %s: %w", e.Genome, snap.Err)
	}
	return species.ApplyStudyCorrections(e, snap.Studies), nil
}
