package workers

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/metrics"
)

type ArcRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Arc, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type TraceRepository interface {
	ListByArcID(ctx context.Context, arcID string, from, to time.Time) ([]*domain.Trace, error)
}

type StreakJob struct {
	ArcID string
}

// StreakWorker recomputes an ARC's current/longest day streak in the
// background after every trace write.
type StreakWorker struct {
	arcRepo   ArcRepository
	traceRepo TraceRepository
	jobs      chan StreakJob
}

func NewStreakWorker(arcRepo ArcRepository, traceRepo TraceRepository) *StreakWorker {
	return &StreakWorker{
		arcRepo:   arcRepo,
		traceRepo: traceRepo,
		jobs:      make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Info().Msg("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Info().Msg("streak worker shutting down")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(arcID string) {
	select {
	case w.jobs <- StreakJob{ArcID: arcID}:
	default:
		metrics.StreakJobsTotal.WithLabelValues("dropped").Inc()
		log.Warn().Str("arc_id", arcID).Msg("streak worker queue full, dropping job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	arc, err := w.arcRepo.GetByID(ctx, job.ArcID)
	if err != nil {
		metrics.StreakJobsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("arc_id", job.ArcID).Msg("streak worker: failed to fetch arc")
		return
	}

	// Full history; trace volume per ARC is bounded by one entry per day.
	traces, err := w.traceRepo.ListByArcID(ctx, job.ArcID, time.Time{}, time.Now().UTC())
	if err != nil {
		metrics.StreakJobsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("arc_id", job.ArcID).Msg("streak worker: failed to fetch traces")
		return
	}

	current, longest := calculateStreaks(traces)

	if arc.CurrentStreak != current || arc.LongestStreak != longest {
		if err := w.arcRepo.UpdateStreaks(ctx, arc.ID, current, longest); err != nil {
			metrics.StreakJobsTotal.WithLabelValues("error").Inc()
			log.Error().Err(err).Str("arc_id", arc.ID).Msg("streak worker: failed to update streaks")
			return
		}
		log.Debug().Str("arc_id", arc.ID).Int("current", current).Int("longest", longest).Msg("streaks updated")
	}

	metrics.StreakJobsTotal.WithLabelValues("ok").Inc()
}

// calculateStreaks counts consecutive days with a successful trace. Failure
// and pause days break the chain.
func calculateStreaks(traces []*domain.Trace) (int, int) {
	if len(traces) == 0 {
		return 0, 0
	}

	uniqueDays := make(map[string]bool)
	var sortedDates []time.Time

	for _, tr := range traces {
		if tr.Outcome != domain.TraceOutcomeSuccess {
			continue
		}
		dateKey := tr.TraceDate.UTC().Format("2006-01-02")
		if !uniqueDays[dateKey] {
			uniqueDays[dateKey] = true
			t, _ := time.Parse("2006-01-02", dateKey)
			sortedDates = append(sortedDates, t)
		}
	}

	if len(sortedDates) == 0 {
		return 0, 0
	}

	sort.Slice(sortedDates, func(i, j int) bool {
		return sortedDates[i].After(sortedDates[j])
	})

	currentStreak := 0
	now := time.Now().UTC().Truncate(24 * time.Hour)
	lastTraceDate := sortedDates[0]

	diff := now.Sub(lastTraceDate).Hours() / 24

	if diff <= 1 {
		currentStreak = 1
		for i := 0; i < len(sortedDates)-1; i++ {
			if sortedDates[i].Sub(sortedDates[i+1]).Hours() == 24 {
				currentStreak++
			} else {
				break
			}
		}
	}

	longestStreak := 0
	tempStreak := 1

	for i := 0; i < len(sortedDates)-1; i++ {
		if sortedDates[i].Sub(sortedDates[i+1]).Hours() == 24 {
			tempStreak++
		} else {
			if tempStreak > longestStreak {
				longestStreak = tempStreak
			}
			tempStreak = 1
		}
	}
	if tempStreak > longestStreak {
		longestStreak = tempStreak
	}

	return currentStreak, longestStreak
}
