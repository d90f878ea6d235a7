package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/barbershop/appointments-backend/internal/db"
)

type Repository interface {
	// List returns services ordered by price. Inactive ones are included only when asked.
	List(ctx context.Context, includeInactive bool) ([]*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	// FindByName matches a case-insensitive fragment against either locale's name among
	// active services.
	FindByName(ctx context.Context, fragment string) (*Offering, error)
	Create(ctx context.Context, o *Offering) error
	Update(ctx context.Context, o *Offering) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var (
	psql            = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	offeringColumns = []string{
		"id", "name", "name_es", "description", "duration_minutes", "price", "active", "created_at", "updated_at",
	}
)

func scanOffering(row pgx.Row) (*Offering, error) {
	var o Offering
	if err := row.Scan(
		&o.ID, &o.Name, &o.NameES, &o.Description, &o.DurationMinutes, &o.Price, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *pgxRepository) List(ctx context.Context, includeInactive bool) ([]*Offering, error) {
	query := psql.Select(offeringColumns...).From("services")
	if !includeInactive {
		query = query.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := query.OrderBy("price ASC", "name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var out []*Offering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service failed: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list services failed: %w", err)
	}
	return out, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Offering, error) {
	query, args, err := psql.Select(offeringColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	o, err := scanOffering(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return o, nil
}

func (r *pgxRepository) FindByName(ctx context.Context, fragment string) (*Offering, error) {
	pattern := "%" + fragment + "%"
	query, args, err := psql.Select(offeringColumns...).
		From("services").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"name_es": pattern},
		}).
		OrderBy("price ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find service query failed: %w", err)
	}

	o, err := scanOffering(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find service failed: %w", err)
	}
	return o, nil
}

func (r *pgxRepository) Create(ctx context.Context, o *Offering) error {
	query, args, err := psql.Insert("services").
		Columns("name", "name_es", "description", "duration_minutes", "price", "active").
		Values(o.Name, o.NameES, o.Description, o.DurationMinutes, o.Price, o.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("create service failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Offering) error {
	query, args, err := psql.Update("services").
		Set("name", o.Name).
		Set("name_es", o.NameES).
		Set("description", o.Description).
		Set("duration_minutes", o.DurationMinutes).
		Set("price", o.Price).
		Set("active", o.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": o.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update service failed: %w", err)
	}
	return nil
}
