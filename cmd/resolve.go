package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/efp-view/internal/species"
)

type resolveOutput struct {
	Species        string `json:"species"`
	Genome         string `json:"genome"`
	ExternalGeneID string `json:"external_gene_id"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Map a gene record to its eFP genome and gene identifier",
	Example: `  efpview resolve --species sorghum_bicolor --id SORBI_3001G000100
  efpview resolve --species zea_mays --id GRMZM2G000014 --synonym Zm00001d027230`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gene := geneFromFlags(cmd)

		entry, err := species.Resolve(gene)
		if err != nil {
			return err
		}
		id, err := species.FormatExternalGeneID(entry, gene)
		if errors.Is(err, species.ErrIncompleteMapping) {
			return fmt.Errorf("%w: %s needs an identifier this record does not carry", err, gene.SpeciesKey)
		}
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resolveOutput{Species: gene.SpeciesKey, Genome: entry.Genome, ExternalGeneID: id})
		}
		fmt.Printf("genome:  %s\ngene id: %s\n", entry.Genome, id)
		return nil
	},
}

func init() {
	addGeneFlags(resolveCmd)
	resolveCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(resolveCmd)
}
