package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/barbershop/appointments-backend/internal/db"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var (
	psql            = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	customerColumns = []string{
		"id", "name", "phone", "email", "preferred_language", "notes", "created_at", "updated_at",
	}
)

func scanCustomer(row pgx.Row, extra ...any) (*Customer, error) {
	var c Customer
	dest := append([]any{
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.PreferredLanguage, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func isPhoneConflict(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	query := psql.Select(append(customerColumns, "count(*) OVER() AS total_count")...).From("customers")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.Like{"phone": pattern},
		})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list customers query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers failed: %w", err)
	}
	defer rows.Close()

	var out []*Customer
	var total int
	for rows.Next() {
		c, err := scanCustomer(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer failed: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list customers failed: %w", err)
	}
	return out, total, nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get customer query failed: %w", err)
	}

	c, err := scanCustomer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"phone": phone})
}

func (r *pgxRepository) Create(ctx context.Context, c *Customer) error {
	query, args, err := psql.Insert("customers").
		Columns("name", "phone", "email", "preferred_language", "notes").
		Values(c.Name, c.Phone, c.Email, c.PreferredLanguage, c.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create customer query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isPhoneConflict(err) {
			return ErrPhoneTaken
		}
		return fmt.Errorf("create customer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Customer) error {
	query, args, err := psql.Update("customers").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("preferred_language", c.PreferredLanguage).
		Set("notes", c.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update customer query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update customer failed: %w", err)
	}
	return nil
}
