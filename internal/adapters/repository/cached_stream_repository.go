package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

var _ domain.StreamSessionRepository = (*CachedStreamRepository)(nil)

const sessionListTTL = 60 * time.Second

// CachedStreamRepository is a read-through Redis cache over the session list
// queries the monthly aggregator issues. The TTL is short because open
// sessions change as streams end; every write invalidates the user's lists.
type CachedStreamRepository struct {
	next  domain.StreamSessionRepository
	cache *redis.Client
}

func NewCachedStreamRepository(next domain.StreamSessionRepository, cache *redis.Client) *CachedStreamRepository {
	return &CachedStreamRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedStreamRepository) listKey(userID string, from, to time.Time) string {
	return fmt.Sprintf("sessions:%s:%s:%s", userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (r *CachedStreamRepository) invalidate(ctx context.Context, userID string) {
	iter := r.cache.Scan(ctx, 0, fmt.Sprintf("sessions:%s:*", userID), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.cache.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("cache: failed to invalidate session list")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("cache: session list scan failed")
	}
}

func (r *CachedStreamRepository) ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]*domain.StreamSession, error) {
	key := r.listKey(userID, from, to)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var sessions []*domain.StreamSession
		if err := json.Unmarshal([]byte(val), &sessions); err == nil {
			return sessions, nil
		}

		log.Warn().Str("user_id", userID).Msg("cache: corrupted session list, cleaning up key")
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Warn().Err(err).Msg("cache: redis read error")
	}

	sessions, err := r.next.ListOverlapping(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sessions); err == nil {
		if setErr := r.cache.Set(ctx, key, data, sessionListTTL).Err(); setErr != nil {
			log.Warn().Err(setErr).Msg("cache: redis set error")
		}
	}

	return sessions, nil
}

func (r *CachedStreamRepository) GetByID(ctx context.Context, id string) (*domain.StreamSession, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedStreamRepository) GetLiveByUserID(ctx context.Context, userID string) (*domain.StreamSession, error) {
	return r.next.GetLiveByUserID(ctx, userID)
}

func (r *CachedStreamRepository) Create(ctx context.Context, session *domain.StreamSession) error {
	if err := r.next.Create(ctx, session); err != nil {
		return err
	}
	r.invalidate(ctx, session.UserID)
	return nil
}

func (r *CachedStreamRepository) Update(ctx context.Context, session *domain.StreamSession) error {
	if err := r.next.Update(ctx, session); err != nil {
		return err
	}
	r.invalidate(ctx, session.UserID)
	return nil
}
