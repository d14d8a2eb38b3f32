package ats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// DefaultBatchLimit bounds concurrent analyses when the caller passes limit <= 0
const DefaultBatchLimit = 4

// BatchItem is one resume to analyze, optionally against its own job description.
type BatchItem struct {
	Label          string                `json:"label"`
	Resume         *types.ResumeSnapshot `json:"resume"`
	JobDescription string                `json:"jobDescription,omitempty"`
}

// BatchResult pairs an item's label with either its result or its error message.
type BatchResult struct {
	Label  string           `json:"label"`
	Result *types.ATSResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// AnalyzeBatch analyzes items concurrently, at most limit at a time. Results
// keep the input order. A bad item records its error and does not stop the
// batch; only context cancellation aborts it.
func AnalyzeBatch(ctx context.Context, items []BatchItem, limit int, opts ...Option) ([]BatchResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	results := make([]BatchResult, len(items))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			results[i].Label = item.Label
			res, err := Analyze(item.Resume, item.JobDescription, opts...)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Result = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
