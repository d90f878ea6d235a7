package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/barbershop/appointments-backend/internal/db"
)

type Repository interface {
	// List returns appointments intersecting [filter.From, filter.To) ordered by start time.
	List(ctx context.Context, filter Filter) ([]*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Create(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	MarkReminderSent(ctx context.Context, id string) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var (
	psql               = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	appointmentColumns = []string{
		"a.id", "a.customer_id", "a.service_id", "a.start_time", "a.end_time", "a.status", "a.price",
		"a.notes", "a.created_by", "a.reminder_sent", "a.created_at", "a.updated_at",
		"c.name", "c.phone", "c.preferred_language", "s.name", "s.name_es",
	}
)

func selectAppointments() squirrel.SelectBuilder {
	return psql.Select(appointmentColumns...).
		From("appointments a").
		Join("customers c ON a.customer_id = c.id").
		Join("services s ON a.service_id = s.id")
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(
		&a.ID, &a.CustomerID, &a.ServiceID, &a.StartTime, &a.EndTime, &a.Status, &a.Price,
		&a.Notes, &a.CreatedBy, &a.ReminderSent, &a.CreatedAt, &a.UpdatedAt,
		&a.CustomerName, &a.CustomerPhone, &a.CustomerLanguage, &a.ServiceName, &a.ServiceNameES,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// translateWriteError maps the overlap exclusion constraint to ErrTimeConflict.
func translateWriteError(err error) error {
	var e *pgconn.PgError
	if errors.As(err, &e) && e.Code == pgerrcode.ExclusionViolation {
		return ErrTimeConflict
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, error) {
	query := selectAppointments().
		Where(squirrel.Lt{"a.start_time": filter.To}).
		Where(squirrel.Gt{"a.end_time": filter.From})

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": filter.Status})
	} else if !filter.IncludeCancelled {
		query = query.Where(squirrel.NotEq{"a.status": StatusCancelled})
	}
	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"a.customer_id": filter.CustomerID})
	}
	if filter.ReminderSent != nil {
		query = query.Where(squirrel.Eq{"a.reminder_sent": *filter.ReminderSent})
	}
	if !filter.StartsFrom.IsZero() {
		query = query.Where(squirrel.GtOrEq{"a.start_time": filter.StartsFrom})
	}
	query = query.OrderBy("a.start_time ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appointments failed: %w", err)
	}
	return out, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query, args, err := selectAppointments().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	a, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Create(ctx context.Context, a *Appointment) error {
	query, args, err := psql.Insert("appointments").
		Columns("customer_id", "service_id", "start_time", "end_time", "status", "price", "notes", "created_by").
		Values(a.CustomerID, a.ServiceID, a.StartTime, a.EndTime, a.Status, a.Price, a.Notes, a.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create appointment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Appointment) error {
	query, args, err := psql.Update("appointments").
		Set("service_id", a.ServiceID).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("status", a.Status).
		Set("price", a.Price).
		Set("notes", a.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment query failed: %w", err)
	}

	var updated time.Time
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := translateWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update appointment failed: %w", err)
	}
	a.UpdatedAt = updated
	return nil
}

func (r *pgxRepository) MarkReminderSent(ctx context.Context, id string) error {
	query, args, err := psql.Update("appointments").
		Set("reminder_sent", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark reminder query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark reminder sent failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
