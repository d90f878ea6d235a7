package blockedtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/barbershop/appointments-backend/internal/db"
)

type Repository interface {
	// ListRange returns every blocked time intersecting [from, to), ordered by start.
	ListRange(ctx context.Context, from, to time.Time) ([]*BlockedTime, error)
	GetByID(ctx context.Context, id string) (*BlockedTime, error)
	Create(ctx context.Context, b *BlockedTime) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var (
	psql           = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	blockedColumns = []string{"id", "start_time", "end_time", "reason", "created_at"}
)

func scanBlockedTime(row pgx.Row) (*BlockedTime, error) {
	var b BlockedTime
	if err := row.Scan(&b.ID, &b.StartTime, &b.EndTime, &b.Reason, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) ListRange(ctx context.Context, from, to time.Time) ([]*BlockedTime, error) {
	query, args, err := psql.Select(blockedColumns...).
		From("blocked_times").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocked times query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocked times failed: %w", err)
	}
	defer rows.Close()

	var out []*BlockedTime
	for rows.Next() {
		b, err := scanBlockedTime(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blocked time failed: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blocked times failed: %w", err)
	}
	return out, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*BlockedTime, error) {
	query, args, err := psql.Select(blockedColumns...).
		From("blocked_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get blocked time query failed: %w", err)
	}

	b, err := scanBlockedTime(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blocked time failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *BlockedTime) error {
	query, args, err := psql.Insert("blocked_times").
		Columns("start_time", "end_time", "reason").
		Values(b.StartTime, b.EndTime, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create blocked time query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create blocked time failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("blocked_times").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete blocked time query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete blocked time failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
