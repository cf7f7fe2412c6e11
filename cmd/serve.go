package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/efp-view/internal/server"
	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/widget"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the eFP widget server",
	Long: `Starts an HTTP server that hosts embeddable eFP widgets, the demo page
and a JSON API for gene resolution and study lists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			d.cfg.Port = servePort
		}

		renderer, err := widget.NewRenderer(d.cfg.SpinnerURL, d.cfg.LogoURL)
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		widgets := widget.NewManager(widget.Options{
			Table:       species.Default,
			Cache:       d.cache,
			URLs:        d.client.URLs(),
			Prober:      d.client,
			IdleTimeout: d.cfg.WidgetIdleTimeout,
			Logger:      d.logger,
		})

		srv := server.New(server.Config{
			Port:           d.cfg.Port,
			AllowAll:       d.cfg.AllowAllOrigins,
			RequestTimeout: d.cfg.RequestTimeout,
		}, species.Default, d.cache, widgets, renderer, d.logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if d.cfg.WidgetIdleTimeout > 0 {
			go widgets.RunSweeper(ctx, d.cfg.WidgetIdleTimeout/2)
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				d.logger.Error().Err(err).Msg("shutdown failed")
			}
		}()

		fmt.Fprintf(os.Stderr, "efpview server %s starting on port %d\n", Version, d.cfg.Port)
		fmt.Fprintf(os.Stderr, "  BAR: %s\n", d.cfg.BarURL)
		fmt.Fprintf(os.Stderr, "  Demo: http://localhost:%d/\n", d.cfg.Port)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
