package main

import (
	"context"
	"fmt"

	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the search, export and enrichment endpoints used by the dashboard.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	a, err := setup(context.Background())
	if err != nil {
		return err
	}

	port := a.cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:           port,
		RequestTimeout: 2 * a.cfg.Timeout(),
		JWT:            jwtCfg,
		Searcher:       a.gateway,
		Exporter:       a.exporter,
		Enricher:       a.enricher,
		Logger:         a.logger,
		Closers:        a.closers,
	})
	if err != nil {
		a.close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
