package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type SubmitRequest struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

type ListRequest struct {
	From *time.Time
	To   *time.Time
}

type Service interface {
	// Submit validates, persists and schedules the notification for a
	// new submission. Validation failures come back as *ValidationError
	// with one entry per offending field; any other error means the row
	// was not stored.
	Submit(ctx context.Context, req SubmitRequest) (Submission, error)

	// List returns submissions newest-first, optionally bounded by an
	// inclusive created_at range.
	List(ctx context.Context, req ListRequest) ([]Submission, error)
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every failed field check so the caller
// can report them together.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation error: %s", strings.Join(names, ", "))
}

// PersistenceError wraps a storage failure so the transport layer can
// distinguish it from validation failures.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
