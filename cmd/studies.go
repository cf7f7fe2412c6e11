package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

var studiesCmd = &cobra.Command{
	Use:   "studies",
	Short: "List the eFP studies available for a species",
	Long: `Fetches the study list for the species' genome from BAR, applies any
species-specific corrections and prints it. With --pick, prompts for a study
and prints the image and details URLs for the gene given by --id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gene := geneFromFlags(cmd)
		pick, _ := cmd.Flags().GetBool("pick")

		entry, err := species.Resolve(gene)
		if err != nil {
			return err
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), d.cfg.RequestTimeout)
		defer cancel()

		snap, err := d.cache.Wait(ctx, entry.Genome)
		if err != nil {
			return fmt.Errorf("waiting for studies: %w", err)
		}
		if snap.State == studies.StateFailed {
			return snap.Err
		}

		list := species.ApplyStudyCorrections(entry, snap.Studies)
		if len(list) == 0 {
			fmt.Fprintf(os.Stderr, "No eFP studies available for %s\n", entry.Genome)
			return nil
		}

		if !pick {
			for _, s := range list {
				fmt.Printf("%s\t%s\n", s.Value, s.Label)
			}
			return nil
		}

		geneID, err := species.FormatExternalGeneID(entry, gene)
		if err != nil {
			return fmt.Errorf("--pick needs a resolvable gene: %w", err)
		}

		prompt := promptui.Select{
			Label: fmt.Sprintf("Study for %s", geneID),
			Items: labels(list),
			Size:  15,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}

		urls := d.client.URLs()
		study := list[idx].Value
		fmt.Printf("image:   %s\n", urls.Image(entry.Genome, study, geneID))
		fmt.Printf("details: %s\n", urls.Details(entry.Genome, study, geneID))
		return nil
	},
}

func labels(list []species.Study) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Label
	}
	return out
}

func init() {
	addGeneFlags(studiesCmd)
	studiesCmd.Flags().Bool("pick", false, "choose a study interactively and print its URLs (requires --id)")
	rootCmd.AddCommand(studiesCmd)
}
