package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/barbershop/appointments-backend/internal/db"
)

type Repository interface {
	Get(ctx context.Context) (*BusinessSettings, error)
	Save(ctx context.Context, s *BusinessSettings) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const singletonID = 1

func (r *pgxRepository) Get(ctx context.Context) (*BusinessSettings, error) {
	query, args, err := psql.Select(
		"business_name", "phone_number", "timezone", "business_hours",
		"buffer_minutes", "advance_booking_days", "updated_at",
	).
		From("business_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get settings query failed: %w", err)
	}

	var s BusinessSettings
	var hours []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.BusinessName, &s.PhoneNumber, &s.Timezone, &hours,
		&s.BufferMinutes, &s.AdvanceBookingDays, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get settings failed: %w", err)
	}

	if err := json.Unmarshal(hours, &s.BusinessHours); err != nil {
		return nil, fmt.Errorf("stored business_hours are invalid: %w", err)
	}

	return &s, nil
}

// Save upserts the singleton row.
func (r *pgxRepository) Save(ctx context.Context, s *BusinessSettings) error {
	hours, err := json.Marshal(s.BusinessHours)
	if err != nil {
		return fmt.Errorf("encode business_hours failed: %w", err)
	}

	query, args, err := psql.Insert("business_settings").
		Columns("id", "business_name", "phone_number", "timezone", "business_hours",
			"buffer_minutes", "advance_booking_days", "updated_at").
		Values(singletonID, s.BusinessName, s.PhoneNumber, s.Timezone, string(hours),
			s.BufferMinutes, s.AdvanceBookingDays, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			phone_number = EXCLUDED.phone_number,
			timezone = EXCLUDED.timezone,
			business_hours = EXCLUDED.business_hours,
			buffer_minutes = EXCLUDED.buffer_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = EXCLUDED.updated_at
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save settings query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		return fmt.Errorf("save settings failed: %w", err)
	}
	return nil
}
