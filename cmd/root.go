package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/efp-view/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "efpview",
	Short: "Embeddable BAR eFP expression image viewer",
	Long: `efpview maps plant gene records to the identifiers used by the BAR
eFP web services (University of Toronto), lists the expression studies
available for each genome and serves an embeddable widget that shows the
eFP image for a chosen study.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
