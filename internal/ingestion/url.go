package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/fetch"
	"github.com/jonathan/ats-analyzer/internal/logger"
)

// Log field size caps for URLs and description previews
const (
	maxLoggedURL     = 120
	maxLoggedPreview = 80
)

// ErrEmptyJobDescription is returned when a page yields no text at all
var ErrEmptyJobDescription = errors.New("job description is empty")

// JobCache stores fetched job descriptions between runs. *db.DB satisfies it.
type JobCache interface {
	GetFreshJobDescription(ctx context.Context, url string) (*db.JobDescription, error)
	UpsertJobDescription(ctx context.Context, input db.JobDescriptionInput) (*db.JobDescription, error)
}

// FetchOptions configures FetchJobDescription
type FetchOptions struct {
	Fetch    *fetch.Options
	Cache    JobCache      // optional
	CacheTTL time.Duration // <= 0 uses the store default
	Logger   *zap.Logger
}

// FetchJobDescription downloads a job posting, extracts its description with
// platform-aware selectors and returns the cleaned text. A fresh cache entry,
// when a cache is configured, is returned without touching the network.
// Cache failures are logged and otherwise ignored.
func FetchJobDescription(ctx context.Context, urlStr string, opts FetchOptions) (string, *Metadata, error) {
	if err := fetch.ValidateURL(urlStr); err != nil {
		return "", nil, err
	}
	platform := fetch.DetectPlatform(urlStr)
	base := logger.WithFields(opts.Logger)
	log := base.With(zap.String("url", logger.TruncateForLog(urlStr, maxLoggedURL)))

	if opts.Cache != nil {
		cached, err := opts.Cache.GetFreshJobDescription(ctx, urlStr)
		if err != nil {
			log.Warn("job description cache lookup failed", zap.Error(err))
		} else if cached != nil {
			log.Debug("job description cache hit")
			meta := NewMetadata(cached.CleanedText, SourceCache)
			meta.URL = urlStr
			meta.Platform = cached.Platform
			return cached.CleanedText, meta, nil
		}
	}

	fetchOpts := opts.Fetch
	if fetchOpts == nil {
		fetchOpts = fetch.DefaultOptions()
	}
	if fetchOpts.Logger == nil {
		withLogger := *fetchOpts
		withLogger.Logger = base
		fetchOpts = &withLogger
	}

	raw, err := fetch.JobText(ctx, urlStr, fetchOpts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch job description: %w", err)
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%s: %w", urlStr, ErrEmptyJobDescription)
	}

	log.Info("fetched job description",
		zap.String("platform", string(platform)),
		zap.Int("chars", len(cleaned)),
		zap.String("preview", logger.TruncateForLog(cleaned, maxLoggedPreview)),
	)

	if opts.Cache != nil {
		_, err := opts.Cache.UpsertJobDescription(ctx, db.JobDescriptionInput{
			URL:         urlStr,
			Platform:    string(platform),
			CleanedText: cleaned,
			TTL:         opts.CacheTTL,
		})
		if err != nil {
			log.Warn("failed to cache job description", zap.Error(err))
		}
	}

	meta := NewMetadata(cleaned, SourceURL)
	meta.URL = urlStr
	meta.Platform = string(platform)
	return cleaned, meta, nil
}
