package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"

	"github.com/xeralabs/rize-engine/internal/core/analytics"
	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/metrics"
)

var ErrUsageUnavailable = errors.New("analytics service: all usage sources unavailable")

const (
	warnCountersUnavailable = "daily counters unavailable, success/failure/pause series zeroed"
	warnSessionsUnavailable = "stream sessions unavailable, live hours series zeroed"
)

// SeriesCache memoizes closed-month results; rows of a past month no longer
// change, so a TTL eviction is enough to bound staleness after backfills.
type SeriesCache = expirable.LRU[string, *MonthlyUsage]

func NewSeriesCache(size int, ttl time.Duration) *SeriesCache {
	return expirable.NewLRU[string, *MonthlyUsage](size, nil, ttl)
}

type AnalyticsService struct {
	traceRepo  domain.TraceRepository
	streamRepo domain.StreamSessionRepository
	cache      *SeriesCache
}

// NewAnalyticsService builds the monthly aggregator. cache may be nil to
// disable memoization (tests do this).
func NewAnalyticsService(traceRepo domain.TraceRepository, streamRepo domain.StreamSessionRepository, cache *SeriesCache) *AnalyticsService {
	return &AnalyticsService{
		traceRepo:  traceRepo,
		streamRepo: streamRepo,
		cache:      cache,
	}
}

type MonthlyUsageInput struct {
	UserID     string
	Year       int
	MonthIndex int // 0-based, January = 0

	// Now anchors open sessions. Passed in rather than read from the clock so
	// identical inputs always produce identical output.
	Now time.Time
}

type MonthlyUsage struct {
	Year      int                   `json:"year"`
	Month     int                   `json:"month"` // 1-based in responses
	Days      int                   `json:"days"`
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Series    analytics.DailySeries `json:"series"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// GetMonthlyUsage aggregates one user's month into the per-day chart series.
// The two upstream fetches run concurrently; if exactly one fails its metric
// group degrades to zeros and the failure surfaces as a warning.
func (s *AnalyticsService) GetMonthlyUsage(ctx context.Context, input MonthlyUsageInput) (*MonthlyUsage, error) {
	window, err := analytics.ResolveMonth(input.Year, input.MonthIndex)
	if err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	cacheKey := fmt.Sprintf("%s:%d:%d", input.UserID, input.Year, input.MonthIndex)
	closedMonth := window.End.Before(now)

	if s.cache != nil && closedMonth {
		if cached, ok := s.cache.Get(cacheKey); ok {
			metrics.AnalyticsCacheHits.Inc()
			return cached, nil
		}
	}

	start := time.Now()

	var (
		wg          sync.WaitGroup
		counters    []*domain.DailyCounter
		sessions    []*domain.StreamSession
		countersErr error
		sessionsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		counters, countersErr = s.traceRepo.CountersByRange(ctx, input.UserID, window.Start, window.End)
	}()
	go func() {
		defer wg.Done()
		sessions, sessionsErr = s.streamRepo.ListOverlapping(ctx, input.UserID, window.Start, window.End)
	}()
	wg.Wait()

	if countersErr != nil && sessionsErr != nil {
		return nil, fmt.Errorf("%w: counters: %v, sessions: %v", ErrUsageUnavailable, countersErr, sessionsErr)
	}

	var warnings []string

	rows := make([]analytics.CounterRow, 0, len(counters))
	if countersErr != nil {
		log.Warn().Err(countersErr).Str("user_id", input.UserID).Msg("monthly usage: counter fetch failed")
		warnings = append(warnings, warnCountersUnavailable)
	} else {
		for _, c := range counters {
			rows = append(rows, analytics.CounterRow{
				Date:    c.Date,
				Success: c.SuccessCount,
				Failure: c.FailureCount,
				Pause:   c.PauseCount,
			})
		}
	}

	intervals := make([]analytics.Interval, 0, len(sessions))
	if sessionsErr != nil {
		log.Warn().Err(sessionsErr).Str("user_id", input.UserID).Msg("monthly usage: session fetch failed")
		warnings = append(warnings, warnSessionsUnavailable)
	} else {
		for _, sess := range sessions {
			intervals = append(intervals, analytics.Interval{
				StartedAt: sess.StartedAt,
				EndedAt:   sess.EndedAt,
			})
		}
	}

	counts := analytics.AggregateDaily(rows, window.Days)
	msPerDay := analytics.ClipIntervalsToDays(intervals, window, now)
	series := analytics.BuildSeries(counts, msPerDay)

	metrics.AnalyticsQueryDuration.Observe(time.Since(start).Seconds())

	usage := &MonthlyUsage{
		Year:      window.Year,
		Month:     window.MonthIndex + 1,
		Days:      window.Days,
		StartDate: window.Start.Format("2006-01-02"),
		EndDate:   window.End.Format("2006-01-02"),
		Series:    series,
		Warnings:  warnings,
	}

	// Partial results are never cached; a retry should see fresh data.
	if s.cache != nil && closedMonth && len(warnings) == 0 {
		s.cache.Add(cacheKey, usage)
	}

	return usage, nil
}
