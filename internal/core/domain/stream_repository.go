package domain

import (
	"context"
	"time"
)

type StreamSessionRepository interface {
	// Create persists a new stream session.
	Create(ctx context.Context, session *StreamSession) error

	// Update persists session changes (typically the end timestamp).
	Update(ctx context.Context, session *StreamSession) error

	// GetByID retrieves a session by its unique identifier.
	GetByID(ctx context.Context, id string) (*StreamSession, error)

	// GetLiveByUserID returns the user's currently open session, or
	// ErrSessionNotFound when none is live.
	GetLiveByUserID(ctx context.Context, userID string) (*StreamSession, error)

	// ListOverlapping returns every session of the user that overlaps
	// [from, to]: started before the range ends and not ended before it begins.
	// Open sessions count as extending to infinity.
	ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]*StreamSession, error)
}
