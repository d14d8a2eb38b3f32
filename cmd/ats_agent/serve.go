package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/server"
)

var (
	servePort        int
	serveDatabaseURL string
	serveConcurrency int
	serveUseBrowser  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the analyzer over REST.

Report storage is enabled when a database URL is given with --db-url or DATABASE_URL.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, or PORT)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().IntVar(&serveConcurrency, "concurrency", 0, "Default batch analysis concurrency")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = serveConcurrency
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		log.Warn("no database configured; report storage is disabled")
	}

	srv, err := server.New(cmd.Context(), server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		Concurrency: cfg.Concurrency,
		UseBrowser:  cfg.UseBrowser,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info("starting ATS analyzer API", zap.Int("port", cfg.Port))
	return srv.Start(cmd.Context())
}
