package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound      = errors.New("stream session not found")
	ErrSessionAlreadyEnded  = errors.New("stream session already ended")
	ErrSessionAlreadyLive   = errors.New("user already has a live session")
	ErrSessionInvalidEnd    = errors.New("stream session cannot end before it started")
	ErrSessionTitleTooLong  = errors.New("stream title is too long (max 140 chars)")
	ErrSessionInvalidUserID = errors.New("invalid user id")
)

const MaxStreamTitleLen = 140

// StreamSession is one live-streaming interval. EndedAt stays nil while the
// stream is on air.
type StreamSession struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	StartedAt time.Time  `json:"started_at" db:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" db:"ended_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

func NewStreamSession(userID, title string, startedAt time.Time) (*StreamSession, error) {
	if userID == "" {
		return nil, ErrSessionInvalidUserID
	}

	title = strings.TrimSpace(title)
	if len(title) > MaxStreamTitleLen {
		return nil, ErrSessionTitleTooLong
	}

	now := time.Now().UTC()

	return &StreamSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		StartedAt: startedAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *StreamSession) IsLive() bool {
	return s.EndedAt == nil
}

func (s *StreamSession) End(at time.Time) error {
	if s.EndedAt != nil {
		return ErrSessionAlreadyEnded
	}

	at = at.UTC()
	if at.Before(s.StartedAt) {
		return ErrSessionInvalidEnd
	}

	s.EndedAt = &at
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Duration reports the elapsed span, using now for sessions still live.
func (s *StreamSession) Duration(now time.Time) time.Duration {
	end := now.UTC()
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}
