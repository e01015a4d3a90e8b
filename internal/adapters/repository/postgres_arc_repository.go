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

type PostgresArcRepository struct {
	db *sqlx.DB
}

func NewPostgresArcRepository(db *sqlx.DB) *PostgresArcRepository {
	return &PostgresArcRepository{db: db}
}

func (r *PostgresArcRepository) Create(ctx context.Context, arc *domain.Arc) error {
	query := `
		INSERT INTO arcs (
			id, user_id, title, description, color, status, target_days,
			current_streak, longest_streak,
			start_date, end_date, archived_at, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description, :color, :status, :target_days,
			:current_streak, :longest_streak,
			:start_date, :end_date, :archived_at, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, arc)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return errors.New("referenced user does not exist")
		}
		return err
	}
	return nil
}

func (r *PostgresArcRepository) GetByID(ctx context.Context, id string) (*domain.Arc, error) {
	var arc domain.Arc
	query := `SELECT * FROM arcs WHERE id = $1`

	err := r.db.GetContext(ctx, &arc, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArcNotFound
		}
		return nil, err
	}
	return &arc, nil
}

func (r *PostgresArcRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Arc, error) {
	arcs := []*domain.Arc{}

	query := `
		SELECT * FROM arcs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &arcs, query, userID)
	if err != nil {
		return nil, err
	}
	return arcs, nil
}

func (r *PostgresArcRepository) Update(ctx context.Context, arc *domain.Arc) error {
	query := `
		UPDATE arcs
		SET title = :title,
		    description = :description,
		    color = :color,
		    status = :status,
		    target_days = :target_days,
		    end_date = :end_date,
		    archived_at = :archived_at,
		    updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, arc)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrArcNotFound
	}

	return nil
}

func (r *PostgresArcRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM arcs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrArcNotFound
	}

	return nil
}

func (r *PostgresArcRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	now := time.Now().UTC()

	query := `
		UPDATE arcs
		SET current_streak = $1,
		    longest_streak = $2,
		    updated_at = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, current, longest, now, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrArcNotFound
	}

	return nil
}
