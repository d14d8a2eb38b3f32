package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/ats"
	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/keywords"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Request bounds; the validate tags on the request types mirror them
const (
	maxBatchLimit      = 16
	defaultTopKeywords = 20
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"job_description,omitempty"`
	JobURL         string          `json:"job_url,omitempty" validate:"omitempty,url,excluded_with=JobDescription"`
	Label          string          `json:"label,omitempty" validate:"max=200"`
	Serializer     string          `json:"serializer,omitempty" validate:"omitempty,oneof=json text"`
	Save           bool            `json:"save,omitempty"`
}

// AnalyzeResponse is returned by POST /analyze
type AnalyzeResponse struct {
	ReportID string           `json:"report_id,omitempty"`
	Result   *types.ATSResult `json:"result"`
}

// BatchRequestItem is one resume in POST /analyze/batch
type BatchRequestItem struct {
	Label          string          `json:"label" validate:"max=200"`
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"job_description,omitempty"`
}

// BatchRequest is the body of POST /analyze/batch. JobDescription applies to
// items that do not carry their own.
type BatchRequest struct {
	Items          []BatchRequestItem `json:"items" validate:"required,min=1,max=50,dive"`
	JobDescription string             `json:"job_description,omitempty"`
	JobURL         string             `json:"job_url,omitempty" validate:"omitempty,url,excluded_with=JobDescription"`
	Serializer     string             `json:"serializer,omitempty" validate:"omitempty,oneof=json text"`
	Concurrency    int                `json:"concurrency,omitempty" validate:"omitempty,min=1,max=16"`
}

// BatchResponse is returned by POST /analyze/batch
type BatchResponse struct {
	Results []ats.BatchResult `json:"results"`
	Failed  int               `json:"failed"`
}

// KeywordsRequest is the body of POST /keywords
type KeywordsRequest struct {
	Text   string `json:"text,omitempty" validate:"required_without=JobURL"`
	JobURL string `json:"job_url,omitempty" validate:"omitempty,url"`
	Top    int    `json:"top,omitempty" validate:"omitempty,min=1,max=100"`
}

// KeywordsResponse is returned by POST /keywords
type KeywordsResponse struct {
	Keywords []keywords.Term `json:"keywords"`
	Total    int             `json:"total"`
}

// handleAnalyze scores one resume, optionally storing the report
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Save && s.store == nil {
		s.writeError(w, &ErrStorageUnavailable{})
		return
	}

	serializer, err := ats.SerializerByName(req.Serializer)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "serializer", Message: err.Error()})
		return
	}

	resume, err := ats.DecodeResume(req.Resume)
	if err != nil {
		s.writeError(w, err)
		return
	}

	jobDescription, err := s.resolveJobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := ats.Analyze(resume, jobDescription, ats.WithSerializer(serializer))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.log.Info("resume analyzed", logger.AnalysisFields(req.Label, result.TotalScore, result.Breakdown.JobMatch != nil)...)

	resp := AnalyzeResponse{Result: result}
	if req.Save {
		report, err := s.store.SaveReport(r.Context(), db.ReportInput{
			Label:          req.Label,
			JobDescription: jobDescription,
			JobURL:         req.JobURL,
			Result:         result,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.ReportID = report.ID.String()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeBatch scores several resumes concurrently. Items that fail to
// decode or analyze carry their error; the batch itself still succeeds.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	serializer, err := ats.SerializerByName(req.Serializer)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "serializer", Message: err.Error()})
		return
	}

	shared, err := s.resolveJobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results := make([]ats.BatchResult, len(req.Items))
	var (
		items   []ats.BatchItem
		indexes []int
	)
	for i, item := range req.Items {
		resume, err := ats.DecodeResume(item.Resume)
		if err != nil {
			results[i] = ats.BatchResult{Label: item.Label, Error: err.Error()}
			continue
		}
		jd := item.JobDescription
		if strings.TrimSpace(jd) == "" {
			jd = shared
		}
		items = append(items, ats.BatchItem{Label: item.Label, Resume: resume, JobDescription: jd})
		indexes = append(indexes, i)
	}

	limit := req.Concurrency
	if limit <= 0 {
		limit = s.concurrency
	}
	if limit > maxBatchLimit {
		limit = maxBatchLimit
	}

	analyzed, err := ats.AnalyzeBatch(r.Context(), items, limit, ats.WithSerializer(serializer))
	if err != nil {
		s.writeError(w, err)
		return
	}
	for j, res := range analyzed {
		results[indexes[j]] = res
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}

	s.log.Info("batch analyzed",
		zap.Int("items", len(results)),
		zap.Int("failed", failed),
		zap.Int("concurrency", limit),
	)

	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results, Failed: failed})
}

// handleKeywords ranks the keywords of a job description
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	text, err := s.resolveJobDescription(r.Context(), req.Text, req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	top := req.Top
	if top <= 0 {
		top = defaultTopKeywords
	}

	ranked := keywords.Rank(text)
	total := len(ranked)
	if len(ranked) > top {
		ranked = ranked[:top]
	}

	s.jsonResponse(w, http.StatusOK, KeywordsResponse{Keywords: ranked, Total: total})
}

// resolveJobDescription prefers inline text and otherwise fetches jobURL.
// Both empty yields an empty description.
func (s *Server) resolveJobDescription(ctx context.Context, text, jobURL string) (string, error) {
	if strings.TrimSpace(text) != "" || jobURL == "" {
		return text, nil
	}
	fetched, err := s.fetchJob(ctx, jobURL)
	if err != nil {
		s.log.Warn("job description fetch failed",
			zap.String("url", logger.TruncateForLog(jobURL, maxLoggedURL)),
			zap.Error(err),
		)
		return "", &ErrJobFetch{URL: jobURL, Cause: err}
	}
	return fetched, nil
}
