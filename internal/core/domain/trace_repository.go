package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTraceNotFound = errors.New("trace not found")
	ErrTraceConflict = errors.New("trace version conflict")
)

type TraceRepository interface {
	// Create persists a new trace to the storage.
	Create(ctx context.Context, trace *Trace) error

	// Update modifies an existing trace.
	// Implementations must handle optimistic locking (version check) to prevent data races.
	Update(ctx context.Context, trace *Trace) error

	// Delete performs a soft delete on the trace.
	// It requires userID to ensure the user actually owns the trace being deleted.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) trace by its ID.
	GetByID(ctx context.Context, id string) (*Trace, error)

	// ListByArcID retrieves traces for a specific ARC within a given date range.
	// This is optimized for UI views like calendars or charts.
	ListByArcID(ctx context.Context, arcID string, from, to time.Time) ([]*Trace, error)

	// CountersByRange rolls the user's traces up into one row per calendar day
	// with success/failure/pause totals. Days without traces produce no row.
	CountersByRange(ctx context.Context, userID string, from, to time.Time) ([]*DailyCounter, error)
}

// DailyCounter is the per-user per-day rollup row consumed by the monthly
// aggregator. Date is kept as the raw "YYYY-MM-DD" storage value.
type DailyCounter struct {
	Date         string `json:"date" db:"date"`
	SuccessCount int    `json:"success_count" db:"success_count"`
	FailureCount int    `json:"failure_count" db:"failure_count"`
	PauseCount   int    `json:"pause_count" db:"pause_count"`
}
