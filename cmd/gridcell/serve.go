package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/gridcell/pkg/grid"
	"github.com/vango-dev/gridcell/pkg/middleware"
	"github.com/vango-dev/gridcell/pkg/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Serve the configured grid as a live page.

Clicks on interactive cells are sent to the server over WebSocket,
dispatched to the cell's renderer, and every open page is updated.

Examples:
  gridcell serve
  gridcell serve --port=8080
  gridcell serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}

			var metrics *middleware.Metrics
			if cfg.MetricsEnabled() {
				metrics = middleware.NewMetrics()
			}

			g, err := buildGrid(cmd.Context(), cfg,
				grid.WithCaption(cfg.Title),
				grid.WithMetrics(metrics),
			)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printBanner(w)
			info(w, "serve")
			success(w, "Loaded %d rows, %d columns", len(g.Rows()), len(g.Columns()))
			info(w, "→ http://%s", cfg.Address())
			if cfg.MetricsEnabled() {
				info(w, "→ metrics at %s", cfg.Server.MetricsPath)
			}

			srv := server.New(g, server.Config{
				Address:     cfg.Address(),
				Title:       cfg.Title,
				MetricsPath: cfg.Server.MetricsPath,
				Pretty:      cfg.Render.Pretty,
				Metrics:     metrics,
			})
			return srv.Run()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from gridcell.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from gridcell.json)")

	return cmd
}
