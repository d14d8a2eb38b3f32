package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Report Methods
// -----------------------------------------------------------------------------

// SaveReport stores an analysis result and returns the stored row
func (db *DB) SaveReport(ctx context.Context, input ReportInput) (*Report, error) {
	if input.Result == nil {
		return nil, errors.New("report result is required")
	}

	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	r := Report{
		ID:                uuid.New(),
		Label:             input.Label,
		TotalScore:        input.Result.TotalScore,
		HasJobDescription: input.Result.Breakdown.JobMatch != nil,
		JobDescription:    nullIfEmpty(input.JobDescription),
		JobURL:            nullIfEmpty(input.JobURL),
		Result:            resultJSON,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO ats_reports (id, label, total_score, has_job_description,
		                          job_description, job_url, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		r.ID, r.Label, r.TotalScore, r.HasJobDescription, r.JobDescription, r.JobURL, resultJSON,
	).Scan(&r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return &r, nil
}

// GetReport retrieves a report by ID, or nil if it does not exist
func (db *DB) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	var r Report
	var resultJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, label, total_score, has_job_description, job_description,
		        job_url, result, created_at
		 FROM ats_reports WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Label, &r.TotalScore, &r.HasJobDescription, &r.JobDescription,
		&r.JobURL, &resultJSON, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	r.Result = resultJSON
	return &r, nil
}

// DeleteReport removes a report. It reports whether a row was deleted.
func (db *DB) DeleteReport(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM ats_reports WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete report: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListReports lists report summaries, newest first, with optional filters and pagination.
// The full result document is not loaded; use GetReport for that.
func (db *DB) ListReports(ctx context.Context, opts ListReportsOptions) ([]Report, int, error) {
	whereClause, args := reportFilters(opts)
	argIndex := len(args) + 1

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ats_reports %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	limit, offset := normalizeLimit(opts.Limit, opts.Offset)
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, label, total_score, has_job_description, job_description,
		        job_url, created_at
		 FROM ats_reports %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Label, &r.TotalScore, &r.HasJobDescription,
			&r.JobDescription, &r.JobURL, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, total, nil
}

// reportFilters builds the WHERE clause and its positional args
func reportFilters(opts ListReportsOptions) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if opts.Label != "" {
		conditions = append(conditions, fmt.Sprintf("label = $%d", argIndex))
		args = append(args, opts.Label)
		argIndex++
	}

	if opts.MinScore != nil {
		conditions = append(conditions, fmt.Sprintf("total_score >= $%d", argIndex))
		args = append(args, *opts.MinScore)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
