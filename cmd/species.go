package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/efp-view/internal/species"
)

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List the species that have an eFP browser",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SPECIES\tGENOME\tGENE RULE\tALIAS OF\tSTUDY FIX")
		for _, key := range species.Default.Keys() {
			e, _ := species.Default.Lookup(key)
			alias, ok := species.Default.AliasOf(key)
			if !ok {
				alias = "-"
			}
			fix := "-"
			if e.Fix != nil {
				fix = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", key, e.Genome, e.Gene.Kind(), alias, fix)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(speciesCmd)
}
