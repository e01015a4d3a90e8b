package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTrace        = errors.New("invalid trace data")
	ErrInvalidTraceOutcome = errors.New("invalid trace outcome (must be success, failure, or pause)")
)

const (
	TraceOutcomeSuccess = "success"
	TraceOutcomeFailure = "failure"
	TraceOutcomePause   = "pause"

	MaxTraceNoteLen = 1000
)

// Trace is one daily content entry logged against an ARC.
type Trace struct {
	ID     string `json:"id" db:"id"`
	ArcID  string `json:"arc_id" db:"arc_id"`
	UserID string `json:"user_id" db:"user_id"`

	TraceDate time.Time `json:"trace_date" db:"trace_date"`
	Outcome   string    `json:"outcome" db:"outcome"`
	Note      string    `json:"note" db:"note"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewTrace(arcID, userID string, date time.Time, outcome, note string) *Trace {
	now := time.Now().UTC()

	return &Trace{
		ArcID:     arcID,
		UserID:    userID,
		TraceDate: date.UTC().Truncate(24 * time.Hour),
		Outcome:   outcome,
		Note:      note,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *Trace) Validate() error {
	if strings.TrimSpace(t.ArcID) == "" {
		return errors.New("arc_id is required")
	}
	if strings.TrimSpace(t.UserID) == "" {
		return errors.New("user_id is required")
	}
	if t.TraceDate.IsZero() {
		return errors.New("trace_date is required")
	}
	if len(t.Note) > MaxTraceNoteLen {
		return errors.New("note is too long (max 1000 chars)")
	}

	switch t.Outcome {
	case TraceOutcomeSuccess, TraceOutcomeFailure, TraceOutcomePause:
	default:
		return ErrInvalidTraceOutcome
	}

	return nil
}
