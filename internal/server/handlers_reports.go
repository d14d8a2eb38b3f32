package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/ats-analyzer/internal/db"
)

// ListReportsResponse is returned by GET /reports
type ListReportsResponse struct {
	Reports []db.Report `json:"reports"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

// handleListReports lists stored reports, newest first.
// Query parameters: label, min_score, limit, offset.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrStorageUnavailable{})
		return
	}

	q := r.URL.Query()
	opts := db.ListReportsOptions{Label: q.Get("label")}

	if v := q.Get("min_score"); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil || score < 0 || score > 100 {
			s.writeError(w, &ErrValidation{Field: "min_score", Message: "must be an integer between 0 and 100"})
			return
		}
		opts.MinScore = &score
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		opts.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			s.writeError(w, &ErrValidation{Field: "offset", Message: "must be a non-negative integer"})
			return
		}
		opts.Offset = offset
	}

	reports, total, err := s.store.ListReports(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = db.DefaultReportLimit
	}
	if limit > db.MaxReportLimit {
		limit = db.MaxReportLimit
	}

	s.jsonResponse(w, http.StatusOK, ListReportsResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  opts.Offset,
	})
}

// handleGetReport returns one stored report with its full result
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrStorageUnavailable{})
		return
	}

	id, err := parseReportID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if report == nil {
		s.writeError(w, &ErrReportNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleDeleteReport removes a stored report
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrStorageUnavailable{})
		return
	}

	id, err := parseReportID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	deleted, err := s.store.DeleteReport(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !deleted {
		s.writeError(w, &ErrReportNotFound{ID: id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseReportID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}
