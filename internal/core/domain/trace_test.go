package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

func TestNewTrace(t *testing.T) {
	date := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	tr := domain.NewTrace("arc-1", "u1", date, domain.TraceOutcomeSuccess, "shipped the tutorial level")

	assert.Equal(t, "arc-1", tr.ArcID)
	assert.Equal(t, "u1", tr.UserID)
	assert.Equal(t, domain.TraceOutcomeSuccess, tr.Outcome)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), tr.TraceDate,
		"trace date must be truncated to UTC midnight")

	assert.Equal(t, 1, tr.Version, "new traces start at version 1 for optimistic locking")
	assert.Nil(t, tr.DeletedAt)
}

func TestTrace_Validate(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*domain.Trace)
		wantErr bool
	}{
		{"valid success trace", func(tr *domain.Trace) {}, false},
		{"valid pause trace", func(tr *domain.Trace) { tr.Outcome = domain.TraceOutcomePause }, false},
		{"missing arc id", func(tr *domain.Trace) { tr.ArcID = " " }, true},
		{"missing user id", func(tr *domain.Trace) { tr.UserID = "" }, true},
		{"zero date", func(tr *domain.Trace) { tr.TraceDate = time.Time{} }, true},
		{"unknown outcome", func(tr *domain.Trace) { tr.Outcome = "skipped" }, true},
		{"note too long", func(tr *domain.Trace) { tr.Note = strings.Repeat("x", 1001) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := domain.NewTrace("arc-1", "u1", date, domain.TraceOutcomeSuccess, "")
			tc.mutate(tr)

			err := tr.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
