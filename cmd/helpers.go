package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/efp-view/internal/bar"
	"github.com/ziadkadry99/efp-view/internal/config"
	"github.com/ziadkadry99/efp-view/internal/observability"
	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `efpview init` to create a config file", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// deps are the pieces every command that talks to BAR needs.
type deps struct {
	cfg    *config.Config
	logger zerolog.Logger
	client *bar.Client
	cache  *studies.Cache
}

// buildDeps creates the logger, BAR client and studies cache from config.
func buildDeps() (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(string(cfg.LogFormat), cfg.LogLevel)
	client := bar.NewClient(cfg.BarURL, cfg.RequestTimeout, cfg.RequestsPerSecond)
	cache := studies.New(client, cfg.StudiesTTL, logger)

	return &deps{cfg: cfg, logger: logger, client: client, cache: cache}, nil
}

// addGeneFlags registers the flags that describe a gene record.
func addGeneFlags(cmd *cobra.Command) {
	cmd.Flags().String("species", "", "species key, e.g. zea_mays (required)")
	cmd.Flags().String("id", "", "gene identifier")
	cmd.Flags().StringSlice("synonym", nil, "alternate gene identifier (repeatable)")
	cmd.Flags().StringToString("xref", nil, "cross reference as source=id (repeatable)")
	_ = cmd.MarkFlagRequired("species")
}

// geneFromFlags builds a gene record from addGeneFlags flags.
func geneFromFlags(cmd *cobra.Command) species.GeneRecord {
	key, _ := cmd.Flags().GetString("species")
	id, _ := cmd.Flags().GetString("id")
	synonyms, _ := cmd.Flags().GetStringSlice("synonym")
	xrefs, _ := cmd.Flags().GetStringToString("xref")

	gene := species.GeneRecord{
		ID:         strings.TrimSpace(id),
		SpeciesKey: strings.TrimSpace(key),
		Synonyms:   synonyms,
	}
	if len(xrefs) > 0 {
		gene.Xrefs = xrefs
	}
	return gene
}
