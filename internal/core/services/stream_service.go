package services

import (
	"context"
	"errors"
	"time"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

type StreamService struct {
	repo domain.StreamSessionRepository
}

func NewStreamService(repo domain.StreamSessionRepository) *StreamService {
	return &StreamService{
		repo: repo,
	}
}

type StartStreamInput struct {
	UserID string
	Title  string
}

// Start opens a new live session. A user can have at most one session on air.
func (s *StreamService) Start(ctx context.Context, input StartStreamInput) (*domain.StreamSession, error) {
	_, err := s.repo.GetLiveByUserID(ctx, input.UserID)
	if err == nil {
		return nil, domain.ErrSessionAlreadyLive
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	session, err := domain.NewStreamSession(input.UserID, input.Title, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *StreamService) End(ctx context.Context, id string, userID string) (*domain.StreamSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	if err := session.End(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *StreamService) Live(ctx context.Context, userID string) (*domain.StreamSession, error) {
	return s.repo.GetLiveByUserID(ctx, userID)
}

func (s *StreamService) ListByMonth(ctx context.Context, userID string, from, to time.Time) ([]*domain.StreamSession, error) {
	return s.repo.ListOverlapping(ctx, userID, from, to)
}
