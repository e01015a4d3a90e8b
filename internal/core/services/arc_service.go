package services

import (
	"context"
	"fmt"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

type ArcService struct {
	repo domain.ArcRepository
}

func NewArcService(repo domain.ArcRepository) *ArcService {
	return &ArcService{
		repo: repo,
	}
}

type CreateArcInput struct {
	UserID      string
	Title       string
	Description string
	Color       string
	TargetDays  int
}

type UpdateArcInput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Color       string
	TargetDays  int
	Status      string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *ArcService) Create(ctx context.Context, input CreateArcInput) (*domain.Arc, error) {
	arc, err := domain.NewArc(input.UserID, input.Title, input.Description, input.Color, input.TargetDays)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, arc); err != nil {
		return nil, err
	}

	return arc, nil
}

func (s *ArcService) GetByID(ctx context.Context, id string, userID string) (*domain.Arc, error) {
	arc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if arc.UserID != userID {
		// Hide other users' ARCs instead of confirming their existence.
		return nil, domain.ErrArcNotFound
	}
	return arc, nil
}

func (s *ArcService) ListByUserID(ctx context.Context, userID string) ([]*domain.Arc, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *ArcService) Update(ctx context.Context, input UpdateArcInput) (*domain.Arc, error) {
	arc, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	title := mergeString(input.Title, arc.Title)
	desc := mergeString(input.Description, arc.Description)
	color := mergeString(input.Color, arc.Color)

	target := arc.TargetDays
	if input.TargetDays > 0 {
		target = input.TargetDays
	}

	if err := arc.Update(title, desc, color, target); err != nil {
		return nil, err
	}

	if input.Status != "" && input.Status != arc.Status {
		if err := arc.ChangeStatus(input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, arc); err != nil {
		return nil, fmt.Errorf("arc service: failed to update arc: %w", err)
	}

	return arc, nil
}

func (s *ArcService) Archive(ctx context.Context, id string, userID string) error {
	arc, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	arc.Archive()
	return s.repo.Update(ctx, arc)
}

func (s *ArcService) Restore(ctx context.Context, id string, userID string) error {
	arc, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	arc.Restore()
	return s.repo.Update(ctx, arc)
}

func (s *ArcService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
