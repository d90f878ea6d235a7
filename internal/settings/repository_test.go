package settings

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsColumns = []string{
	"business_name", "phone_number", "timezone", "business_hours",
	"buffer_minutes", "advance_booking_days", "updated_at",
}

func TestRepositoryGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	phone := "+18095550000"
	updated := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM business_settings WHERE id = \$1`).
		WithArgs(singletonID).
		WillReturnRows(pgxmock.NewRows(settingsColumns).AddRow(
			"Joan's Barbershop", &phone, "America/New_York",
			[]byte(`{"monday":{"open":"09:00","close":"18:00"},"sunday":{"open":null,"close":null}}`),
			0, 30, updated,
		))

	s, err := NewPgxRepository(mock).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Joan's Barbershop", s.BusinessName)
	assert.True(t, s.BusinessHours.Day(time.Monday).IsOpen())
	assert.False(t, s.BusinessHours.Day(time.Sunday).IsOpen())
	assert.Equal(t, 30, s.AdvanceBookingDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM business_settings`).WithArgs(singletonID).WillReturnError(pgx.ErrNoRows)

	_, err = NewPgxRepository(mock).Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositorySave(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	updated := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO business_settings .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(singletonID, "Joan's", (*string)(nil), "UTC", pgxmock.AnyArg(), 5, 14).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(updated))

	s := &BusinessSettings{BusinessName: "Joan's", Timezone: "UTC", BufferMinutes: 5, AdvanceBookingDays: 14}
	require.NoError(t, NewPgxRepository(mock).Save(context.Background(), s))
	assert.Equal(t, updated, s.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
