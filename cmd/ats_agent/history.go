package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/history"
	"github.com/jonathan/ats-analyzer/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded scores from the local history file",
	Long:  "List analyses recorded with 'analyze --history', newest first, optionally for a single label.",
	RunE:  runHistoryCmd,
}

var (
	historyPath  string
	historyLabel string
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.Flags().StringVar(&historyPath, "history", "", "SQLite history file (defaults to history_path from config)")
	historyCmd.Flags().StringVarP(&historyLabel, "label", "l", "", "Only show entries with this label")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultListLimit, "Maximum entries to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.HistoryPath
	if cmd.Flags().Changed("history") {
		path = historyPath
	}
	if path == "" {
		return fmt.Errorf("--history or history_path in config is required")
	}

	return showHistory(cmd.Context(), cmd.OutOrStdout(), path, historyLabel, historyLimit, historyJSON)
}

func showHistory(ctx context.Context, out io.Writer, path, label string, limit int, asJSON bool) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx, label, limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	observability.NewPrinter(out).PrintHistory(entries)
	return nil
}
