package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/keywords"
	"github.com/jonathan/ats-analyzer/internal/observability"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the top keywords of a job posting",
	Long:  "Extract and rank the keywords an ATS would look for in a job posting, read from a text file or fetched from a URL.",
	RunE:  runKeywordsCmd,
}

var (
	keywordsJob        string
	keywordsJobURL     string
	keywordsTop        int
	keywordsJSON       bool
	keywordsUseBrowser bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	keywordsCmd.Flags().StringVar(&keywordsJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	keywordsCmd.Flags().IntVarP(&keywordsTop, "top", "n", 20, "Number of keywords to list")
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print keywords as JSON")
	keywordsCmd.Flags().BoolVar(&keywordsUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywordsCmd(cmd *cobra.Command, _ []string) error {
	if keywordsJob == "" && keywordsJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if keywordsJob != "" && keywordsJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if keywordsTop < 1 {
		return fmt.Errorf("--top must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Job, cfg.JobURL = keywordsJob, keywordsJobURL
	cfg.UseBrowser = cfg.UseBrowser || keywordsUseBrowser

	text, err := loadJobDescription(cmd.Context(), *cfg, nil)
	if err != nil {
		return err
	}

	return printKeywords(cmd.OutOrStdout(), text, keywordsTop, keywordsJSON)
}

// printKeywords ranks text and writes the top n keywords as JSON or a boxed table
func printKeywords(out io.Writer, text string, n int, asJSON bool) error {
	ranked := keywords.Rank(text)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	observability.NewPrinter(out).PrintKeywords(ranked)
	return nil
}
