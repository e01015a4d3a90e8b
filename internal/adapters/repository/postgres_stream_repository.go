package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

type PostgresStreamRepository struct {
	db *sqlx.DB
}

func NewPostgresStreamRepository(db *sqlx.DB) *PostgresStreamRepository {
	return &PostgresStreamRepository{db: db}
}

func (r *PostgresStreamRepository) Create(ctx context.Context, session *domain.StreamSession) error {
	query := `
		INSERT INTO stream_sessions (
			id, user_id, title, started_at, ended_at, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :started_at, :ended_at, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return errors.New("referenced user does not exist")
		}
		return err
	}
	return nil
}

func (r *PostgresStreamRepository) Update(ctx context.Context, session *domain.StreamSession) error {
	query := `
		UPDATE stream_sessions
		SET title = :title,
		    ended_at = :ended_at,
		    updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (r *PostgresStreamRepository) GetByID(ctx context.Context, id string) (*domain.StreamSession, error) {
	var session domain.StreamSession
	query := `SELECT * FROM stream_sessions WHERE id = $1`

	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *PostgresStreamRepository) GetLiveByUserID(ctx context.Context, userID string) (*domain.StreamSession, error) {
	var session domain.StreamSession

	query := `
		SELECT * FROM stream_sessions
		WHERE user_id = $1 AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &session, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *PostgresStreamRepository) ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]*domain.StreamSession, error) {
	sessions := []*domain.StreamSession{}

	// Open sessions (ended_at IS NULL) overlap every range they started before.
	query := `
		SELECT * FROM stream_sessions
		WHERE user_id = $1
		  AND started_at <= $3
		  AND (ended_at IS NULL OR ended_at >= $2)
		ORDER BY started_at ASC`

	err := r.db.SelectContext(ctx, &sessions, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
