// Package main provides the ats_agent CLI: resume analysis, keyword
// extraction, score history and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/logger"
)

var (
	configPath string
	debugLog   bool
	jsonLog    bool

	// log is set by the root command before any subcommand runs
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "ATS compatibility analyzer",
	Long: `ats_agent scores resumes for Applicant Tracking System compatibility: contact details,
section structure, bullet quality, skills, parsing safety and, given a job posting, keyword match.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logger.New(jsonLog, debugLog)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file (flags override its values)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Write logs as JSON")
}

// loadConfig reads --config (if set) plus ATS_* environment overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if configPath != "" {
		log.Debug("loaded config", zap.String("path", configPath))
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
