package services

import (
	"context"
	"time"

	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/core/workers"
)

type TraceService struct {
	repo    domain.TraceRepository
	arcRepo domain.ArcRepository
	worker  *workers.StreakWorker
}

func NewTraceService(repo domain.TraceRepository, arcRepo domain.ArcRepository, worker *workers.StreakWorker) *TraceService {
	return &TraceService{
		repo:    repo,
		arcRepo: arcRepo,
		worker:  worker,
	}
}

type CreateTraceInput struct {
	ArcID     string
	UserID    string
	TraceDate time.Time
	Outcome   string
	Note      string
}

type UpdateTraceInput struct {
	ID      string
	UserID  string
	Outcome string
	Note    string
	Version int
}

func (s *TraceService) Create(ctx context.Context, input CreateTraceInput) (*domain.Trace, error) {
	trace := domain.NewTrace(input.ArcID, input.UserID, input.TraceDate, input.Outcome, input.Note)

	if err := trace.Validate(); err != nil {
		return nil, err
	}

	arc, err := s.arcRepo.GetByID(ctx, trace.ArcID)
	if err != nil {
		return nil, err
	}
	if arc.UserID != trace.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, trace); err != nil {
		return nil, err
	}

	s.worker.Enqueue(trace.ArcID)

	return trace, nil
}

func (s *TraceService) Update(ctx context.Context, input UpdateTraceInput) (*domain.Trace, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrTraceConflict
	}

	existing.Outcome = input.Outcome
	existing.Note = input.Note

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	existing.Version++
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue(existing.ArcID)

	return existing, nil
}

func (s *TraceService) GetByID(ctx context.Context, id string, userID string) (*domain.Trace, error) {
	trace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trace.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return trace, nil
}

func (s *TraceService) ListByArcID(ctx context.Context, arcID string, userID string, from, to time.Time) ([]*domain.Trace, error) {
	arc, err := s.arcRepo.GetByID(ctx, arcID)
	if err != nil {
		return nil, err
	}
	if arc.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByArcID(ctx, arcID, from, to)
}

func (s *TraceService) Delete(ctx context.Context, id string, userID string) error {
	trace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if trace.UserID != userID {
		return domain.ErrUnauthorized
	}

	arcID := trace.ArcID

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.worker.Enqueue(arcID)

	return nil
}
