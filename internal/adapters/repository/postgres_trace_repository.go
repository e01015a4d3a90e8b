package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

type PostgresTraceRepository struct {
	db *sqlx.DB
}

func NewPostgresTraceRepository(db *sqlx.DB) *PostgresTraceRepository {
	return &PostgresTraceRepository{db: db}
}

func (r *PostgresTraceRepository) Create(ctx context.Context, trace *domain.Trace) error {
	if trace.ID == "" {
		trace.ID = uuid.NewString()
	}

	query := `
		INSERT INTO traces (
			id, arc_id, user_id,
			trace_date, outcome, note,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :arc_id, :user_id,
			:trace_date, :outcome, :note,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, trace)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23503" {
				return errors.New("referenced arc or user does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrTraceConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresTraceRepository) GetByID(ctx context.Context, id string) (*domain.Trace, error) {
	var trace domain.Trace
	query := `SELECT * FROM traces WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &trace, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTraceNotFound
		}
		return nil, err
	}
	return &trace, nil
}

func (r *PostgresTraceRepository) ListByArcID(ctx context.Context, arcID string, from, to time.Time) ([]*domain.Trace, error) {
	traces := []*domain.Trace{}

	query := `
		SELECT * FROM traces
		WHERE arc_id = $1
		  AND trace_date >= $2
		  AND trace_date <= $3
		  AND deleted_at IS NULL
		ORDER BY trace_date DESC`

	err := r.db.SelectContext(ctx, &traces, query, arcID, from, to)
	if err != nil {
		return nil, err
	}
	return traces, nil
}

func (r *PostgresTraceRepository) Update(ctx context.Context, trace *domain.Trace) error {
	query := `
		UPDATE traces
		SET outcome = :outcome,
		    note = :note,
		    trace_date = :trace_date,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic lock check
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, trace)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, trace.ID)
		if !exists {
			return domain.ErrTraceNotFound
		}
		return domain.ErrTraceConflict
	}

	return nil
}

func (r *PostgresTraceRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE traces
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Ownership check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTraceNotFound
	}

	return nil
}

// CountersByRange rolls traces up into one row per day. The date comes back as
// raw text; the aggregator parses it defensively on its side.
func (r *PostgresTraceRepository) CountersByRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCounter, error) {
	counters := []*domain.DailyCounter{}

	query := `
		SELECT to_char(trace_date, 'YYYY-MM-DD') AS date,
		       COUNT(*) FILTER (WHERE outcome = 'success') AS success_count,
		       COUNT(*) FILTER (WHERE outcome = 'failure') AS failure_count,
		       COUNT(*) FILTER (WHERE outcome = 'pause')   AS pause_count
		FROM traces
		WHERE user_id = $1
		  AND trace_date >= $2
		  AND trace_date <= $3
		  AND deleted_at IS NULL
		GROUP BY trace_date
		ORDER BY trace_date ASC`

	err := r.db.SelectContext(ctx, &counters, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return counters, nil
}

func (r *PostgresTraceRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM traces WHERE id = $1", id)
	return count > 0, err
}
