package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/ats"
	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/fetch"
	"github.com/jonathan/ats-analyzer/internal/history"
	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/observability"
	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume.json...]",
	Short: "Score one or more resumes for ATS compatibility",
	Long: `Analyze scores resume JSON files and writes the results as JSON.

With --job or --job-url the resumes are also matched against the job posting's keywords.
A single resume produces one result object; several produce an array of labeled results.
Configuration can be loaded with --config. Command-line flags override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeResumes     []string
	analyzeJob         string
	analyzeJobURL      string
	analyzeOutput      string
	analyzeLabel       string
	analyzeSerializer  string
	analyzeUseBrowser  bool
	analyzeVerbose     bool
	analyzeConcurrency int
	analyzeMinScore    int
	analyzeHistory     string
	analyzeDatabaseURL string
	analyzeSave        bool
)

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeResumes, "resume", "r", nil, "Resume JSON file (repeatable; positional arguments are also accepted)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write JSON results to this file instead of stdout")
	analyzeCmd.Flags().StringVarP(&analyzeLabel, "label", "l", "", "Label for the result (defaults to the resume file name)")
	analyzeCmd.Flags().StringVar(&analyzeSerializer, "serializer", "", "Resume text form used for scans: json or text")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a boxed summary to stderr")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "Resumes analyzed in parallel")
	analyzeCmd.Flags().IntVar(&analyzeMinScore, "min-score", 0, "Exit with an error when any total score is below this")
	analyzeCmd.Flags().StringVar(&analyzeHistory, "history", "", "SQLite file to record scores in")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store reports in PostgreSQL (requires --db-url)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := *loaded

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if resumes := append(append([]string{}, analyzeResumes...), args...); len(resumes) > 0 {
		cfg.Resumes = resumes
	}
	if flags.Changed("job") {
		cfg.Job, cfg.JobURL = analyzeJob, ""
	}
	if flags.Changed("job-url") {
		cfg.JobURL = analyzeJobURL
		if !flags.Changed("job") {
			cfg.Job = ""
		}
	}
	if flags.Changed("output") {
		cfg.Output = analyzeOutput
	}
	if flags.Changed("label") {
		cfg.Label = analyzeLabel
	}
	if flags.Changed("serializer") {
		cfg.Serializer = analyzeSerializer
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = analyzeConcurrency
	}
	if flags.Changed("min-score") {
		cfg.MinScore = analyzeMinScore
	}
	if flags.Changed("history") {
		cfg.HistoryPath = analyzeHistory
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Resumes) == 0 {
		return fmt.Errorf("at least one resume must be provided with --resume or as an argument")
	}

	return runAnalysis(cmd.Context(), analysisRun{
		cfg:    cfg,
		save:   analyzeSave,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	})
}

// analysisRun is one invocation of the analyze command after flags and config are merged
type analysisRun struct {
	cfg    config.Config
	save   bool
	stdout io.Writer
	stderr io.Writer
}

// scored is one resume's outcome, carried through history, storage and output
type scored struct {
	label  string
	path   string
	result *types.ATSResult
	err    string
}

// belowMinimumError reports resumes scoring under --min-score
type belowMinimumError struct {
	MinScore int
	Labels   []string
}

func (e *belowMinimumError) Error() string {
	return fmt.Sprintf("score below minimum %d: %s", e.MinScore, strings.Join(e.Labels, ", "))
}

func runAnalysis(ctx context.Context, run analysisRun) error {
	cfg := run.cfg
	if run.save && cfg.DatabaseURL == "" {
		return fmt.Errorf("--save requires --db-url or DATABASE_URL")
	}

	serializer, err := ats.SerializerByName(cfg.Serializer)
	if err != nil {
		return err
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	jobDescription, err := loadJobDescription(ctx, cfg, database)
	if err != nil {
		return err
	}

	results, err := scoreResumes(ctx, cfg, jobDescription, serializer)
	if err != nil {
		return err
	}

	var hist *history.Store
	if cfg.HistoryPath != "" {
		hist, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	printer := observability.NewPrinter(run.stderr)
	for _, res := range results {
		if res.result == nil {
			log.Warn("resume skipped", zap.String("path", res.path), zap.String("error", res.err))
			continue
		}
		log.Info("resume analyzed", logger.AnalysisFields(res.label, res.result.TotalScore, res.result.Breakdown.JobMatch != nil)...)

		var previous *history.Entry
		if hist != nil {
			previous, err = hist.Latest(ctx, res.label)
			if err != nil {
				return err
			}
			if _, err := hist.Record(ctx, res.label, res.path, res.result); err != nil {
				return err
			}
		}

		if run.save {
			report, err := database.SaveReport(ctx, db.ReportInput{
				Label:          res.label,
				JobDescription: jobDescription,
				JobURL:         cfg.JobURL,
				Result:         res.result,
			})
			if err != nil {
				return err
			}
			log.Info("report saved", zap.String(logger.FieldReportID, report.ID.String()))
		}

		if cfg.Verbose {
			printer.PrintResult(res.label, res.result)
			printer.PrintIssues(res.result.Issues)
			printer.PrintKeywordDensity(res.result.KeywordDensity)
			if previous != nil {
				printer.PrintScoreDelta(previous, res.result.TotalScore)
			}
		}
	}

	if err := writeResults(cfg.Output, run.stdout, results); err != nil {
		return err
	}

	return checkMinScore(cfg.MinScore, results)
}

// loadJobDescription reads --job or fetches --job-url; neither yields ""
func loadJobDescription(ctx context.Context, cfg config.Config, database *db.DB) (string, error) {
	switch {
	case cfg.Job != "":
		text, meta, err := ingestion.ReadJobDescription(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		log.Debug("job description loaded", zap.String("path", cfg.Job), zap.Int("chars", meta.Chars))
		return text, nil

	case cfg.JobURL != "":
		fetchOpts := fetch.DefaultOptions()
		fetchOpts.UseBrowser = cfg.UseBrowser
		opts := ingestion.FetchOptions{Fetch: fetchOpts, Logger: log}
		if database != nil {
			opts.Cache = database
		}
		text, meta, err := ingestion.FetchJobDescription(ctx, cfg.JobURL, opts)
		if err != nil {
			return "", err
		}
		log.Debug("job description fetched",
			zap.String("url", cfg.JobURL),
			zap.String("source", meta.Source),
			zap.String("platform", meta.Platform),
		)
		return text, nil
	}
	return "", nil
}

// scoreResumes analyzes every configured resume. A single resume fails the
// run on bad input; in a batch the bad item carries its error instead.
func scoreResumes(ctx context.Context, cfg config.Config, jobDescription string, serializer ats.Serializer) ([]scored, error) {
	if len(cfg.Resumes) == 1 {
		path := cfg.Resumes[0]
		resume, err := readResume(path)
		if err != nil {
			return nil, err
		}
		result, err := ats.Analyze(resume, jobDescription, ats.WithSerializer(serializer))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []scored{{label: resumeLabel(cfg.Label, path), path: path, result: result}}, nil
	}

	out := make([]scored, len(cfg.Resumes))
	var (
		items   []ats.BatchItem
		indexes []int
	)
	for i, path := range cfg.Resumes {
		out[i] = scored{label: resumeLabel("", path), path: path}
		if cfg.Label != "" {
			out[i].label = cfg.Label + "/" + out[i].label
		}
		resume, err := readResume(path)
		if err != nil {
			out[i].err = err.Error()
			continue
		}
		items = append(items, ats.BatchItem{Label: out[i].label, Resume: resume, JobDescription: jobDescription})
		indexes = append(indexes, i)
	}

	batch, err := ats.AnalyzeBatch(ctx, items, cfg.Concurrency, ats.WithSerializer(serializer))
	if err != nil {
		return nil, err
	}
	for j, res := range batch {
		out[indexes[j]].result = res.Result
		out[indexes[j]].err = res.Error
	}
	return out, nil
}

func readResume(path string) (*types.ResumeSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	resume, err := ats.DecodeResume(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resume, nil
}

// resumeLabel prefers the explicit label and falls back to the file name without extension
func resumeLabel(label, path string) string {
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeResults emits one result object, or an array of labeled results for a
// batch, after checking each result against the result schema.
func writeResults(outputPath string, stdout io.Writer, results []scored) error {
	for _, res := range results {
		if res.result == nil {
			continue
		}
		raw, err := json.Marshal(res.result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := schemas.ValidateResult(raw); err != nil {
			return fmt.Errorf("result for %s failed schema validation: %w", res.label, err)
		}
	}

	var payload any
	if len(results) == 1 {
		payload = results[0].result
	} else {
		batch := make([]ats.BatchResult, len(results))
		for i, res := range results {
			batch[i] = ats.BatchResult{Label: res.label, Result: res.result, Error: res.err}
		}
		payload = batch
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err := stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("results written", zap.String("path", outputPath))
	return nil
}

// checkMinScore fails when any analyzed resume scores below minScore (0 disables)
func checkMinScore(minScore int, results []scored) error {
	if minScore <= 0 {
		return nil
	}
	var below []string
	for _, res := range results {
		if res.result != nil && res.result.TotalScore < minScore {
			below = append(below, fmt.Sprintf("%s (%d)", res.label, res.result.TotalScore))
		}
	}
	if len(below) > 0 {
		return &belowMinimumError{MinScore: minScore, Labels: below}
	}
	return nil
}
