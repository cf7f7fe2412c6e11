package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/efp-view/internal/progress"
	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Fetch the study list of every supported genome",
	Long: `Fetches the study lists for all genomes in parallel and reports which
ones BAR could serve. Useful as a smoke test against a BAR deployment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		genomes := species.Default.Genomes()
		reporter := progress.NewReporter()
		reporter.Start(len(genomes))

		results := make([]studies.Snapshot, len(genomes))

		g, ctx := errgroup.WithContext(cmd.Context())
		if concurrency > 0 {
			g.SetLimit(concurrency)
		}
		for i, genome := range genomes {
			g.Go(func() error {
				waitCtx, cancel := context.WithTimeout(ctx, d.cfg.RequestTimeout)
				defer cancel()
				snap, err := d.cache.Wait(waitCtx, genome)
				if err != nil {
					return fmt.Errorf("%s: %w", genome, err)
				}
				results[i] = snap
				res := progress.Result{Genome: genome, Studies: len(snap.Studies)}
				if snap.State == studies.StateFailed {
					res.Err = snap.Err
				}
				reporter.Record(res)
				return nil
			})
		}
		err = g.Wait()
		reporter.Finish()
		if err != nil {
			return err
		}

		failed := 0
		for _, snap := range results {
			if snap.State == studies.StateFailed {
				failed++
				fmt.Printf("%-12s FAILED  %v\n", snap.Genome, snap.Err)
				continue
			}
			fmt.Printf("%-12s %d studies\n", snap.Genome, len(snap.Studies))
		}
		if failed > 0 {
			return fmt.Errorf("warm: %d genomes failed", failed)
		}
		return nil
	},
}

func init() {
	warmCmd.Flags().Int("concurrency", 4, "maximum parallel fetches")
	rootCmd.AddCommand(warmCmd)
}
