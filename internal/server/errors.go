// Package server provides the HTTP API for the ATS analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/ats-analyzer/internal/ats"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrReportNotFound indicates no stored report has the ID
type ErrReportNotFound struct {
	ID uuid.UUID
}

func (e *ErrReportNotFound) Error() string {
	return fmt.Sprintf("report not found: %s", e.ID)
}

// ErrStorageUnavailable indicates the server was started without a database
type ErrStorageUnavailable struct{}

func (e *ErrStorageUnavailable) Error() string {
	return "report storage is not configured"
}

// ErrJobFetch indicates the job description URL could not be loaded
type ErrJobFetch struct {
	URL   string
	Cause error
}

func (e *ErrJobFetch) Error() string {
	return fmt.Sprintf("failed to fetch job description from %s: %v", e.URL, e.Cause)
}

func (e *ErrJobFetch) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrReportNotFound
		unavailable *ErrStorageUnavailable
		jobFetch    *ErrJobFetch
		invalid     *ats.InvalidInputError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &jobFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
