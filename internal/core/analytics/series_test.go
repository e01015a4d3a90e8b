package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeralabs/rize-engine/internal/core/analytics"
)

func TestBuildSeries(t *testing.T) {
	t.Run("Success: Hours round up, zero stays zero", func(t *testing.T) {
		counts := analytics.AggregateDaily(nil, 5)
		ms := []int64{0, 1, 3_600_000, 3_600_001, 9_000_000}

		series := analytics.BuildSeries(counts, ms)

		assert.Equal(t, []int{0, 1, 1, 2, 3}, series.LiveHours)
	})

	t.Run("Success: Counter arrays pass through aligned", func(t *testing.T) {
		counts := analytics.AggregateDaily([]analytics.CounterRow{
			{Date: "2024-03-02", Success: 4, Failure: 1, Pause: 2},
		}, 3)

		series := analytics.BuildSeries(counts, []int64{0, 0, 0})

		assert.Equal(t, []int{0, 4, 0}, series.Success)
		assert.Equal(t, []int{0, 1, 0}, series.Failure)
		assert.Equal(t, []int{0, 2, 0}, series.Pause)
		assert.Equal(t, []int{0, 0, 0}, series.LiveHours)
	})
}

// Mirrors the dashboard scenario: one counter row on March 1st plus one
// 2.5 hour stream on the same day.
func TestMonthAggregationEndToEnd(t *testing.T) {
	w, err := analytics.ResolveMonth(2024, 2)
	assert.NoError(t, err)
	assert.Equal(t, 31, w.Days)

	counts := analytics.AggregateDaily([]analytics.CounterRow{
		{Date: "2024-03-01", Success: 1, Failure: 0, Pause: 0},
	}, w.Days)

	ms := analytics.ClipIntervalsToDays([]analytics.Interval{
		{StartedAt: ts("2024-03-01T00:00:00Z"), EndedAt: tsPtr("2024-03-01T02:30:00Z")},
	}, w, ts("2024-03-20T00:00:00Z"))

	series := analytics.BuildSeries(counts, ms)

	assert.Equal(t, 1, series.Success[0])
	assert.Equal(t, 3, series.LiveHours[0])

	for i := 1; i < w.Days; i++ {
		assert.Zero(t, series.Success[i], "day %d", i+1)
		assert.Zero(t, series.Failure[i], "day %d", i+1)
		assert.Zero(t, series.Pause[i], "day %d", i+1)
		assert.Zero(t, series.LiveHours[i], "day %d", i+1)
	}
}
