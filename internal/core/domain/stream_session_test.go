package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

func TestNewStreamSession(t *testing.T) {
	startedAt := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	t.Run("Success: New session is live", func(t *testing.T) {
		s, err := domain.NewStreamSession("u1", "speedrun practice", startedAt)

		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.True(t, s.IsLive())
		assert.Equal(t, startedAt, s.StartedAt)
	})

	t.Run("Error: Missing user", func(t *testing.T) {
		_, err := domain.NewStreamSession("", "title", startedAt)
		assert.Equal(t, domain.ErrSessionInvalidUserID, err)
	})

	t.Run("Error: Title too long", func(t *testing.T) {
		_, err := domain.NewStreamSession("u1", strings.Repeat("x", 141), startedAt)
		assert.Equal(t, domain.ErrSessionTitleTooLong, err)
	})
}

func TestStreamSession_End(t *testing.T) {
	startedAt := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	t.Run("Success: Ending closes the session", func(t *testing.T) {
		s, _ := domain.NewStreamSession("u1", "", startedAt)

		err := s.End(startedAt.Add(2 * time.Hour))

		require.NoError(t, err)
		assert.False(t, s.IsLive())
		assert.Equal(t, 2*time.Hour, s.Duration(time.Now()))
	})

	t.Run("Error: Cannot end twice", func(t *testing.T) {
		s, _ := domain.NewStreamSession("u1", "", startedAt)
		require.NoError(t, s.End(startedAt.Add(time.Hour)))

		assert.Equal(t, domain.ErrSessionAlreadyEnded, s.End(startedAt.Add(2*time.Hour)))
	})

	t.Run("Error: Cannot end before start", func(t *testing.T) {
		s, _ := domain.NewStreamSession("u1", "", startedAt)

		assert.Equal(t, domain.ErrSessionInvalidEnd, s.End(startedAt.Add(-time.Minute)))
	})
}

func TestStreamSession_Duration(t *testing.T) {
	startedAt := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)
	s, _ := domain.NewStreamSession("u1", "", startedAt)

	now := startedAt.Add(90 * time.Minute)
	assert.Equal(t, 90*time.Minute, s.Duration(now), "live session accrues up to now")

	assert.Equal(t, time.Duration(0), s.Duration(startedAt.Add(-time.Hour)),
		"clock skew never yields a negative duration")
}
