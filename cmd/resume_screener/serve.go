package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for job descriptions, resume uploads,
scoring, ranking and the hiring pipeline. Uses PostgreSQL when DATABASE_URL is set and a
local SQLite file otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	svc := screening.NewService(store, log, screening.Options{
		Concurrency:     cfg.RankConcurrency,
		DefaultStrategy: cfg.Strategy(),
	})

	srv := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, store, svc, log)

	return srv.Start()
}
