package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepositoryListDayExcludesCancelled(t *testing.T) {
	mock := newMock(t)
	from := time.Date(2026, 10, 19, 4, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	start := from.Add(9 * time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM appointments a JOIN customers c ON a.customer_id = c.id JOIN services s ON a.service_id = s.id ` +
		`WHERE a.start_time < \$1 AND a.end_time > \$2 AND a.status <> \$3 ORDER BY a.start_time ASC`).
		WithArgs(to, from, StatusCancelled).
		WillReturnRows(pgxmock.NewRows(appointmentColumns).AddRow(
			"a1", "c1", "s1", start, start.Add(30*time.Minute), StatusConfirmed, 25.0,
			(*string)(nil), SourceVoiceAI, false, from, from,
			"Luis", "8095551234", "es", "Haircut", "Corte de pelo",
		))

	items, err := NewPgxRepository(mock).List(context.Background(), Filter{From: from, To: to})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Luis", items[0].CustomerName)
	assert.Equal(t, SourceVoiceAI, items[0].CreatedBy)
	assert.Equal(t, start.Add(30*time.Minute), items[0].Span().End)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListUpcomingForCustomer(t *testing.T) {
	mock := newMock(t)
	from := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	notSent := false

	mock.ExpectQuery(`WHERE a.start_time < \$1 AND a.end_time > \$2 AND a.status <> \$3 AND a.customer_id = \$4 AND a.reminder_sent = \$5 ORDER BY a.start_time ASC LIMIT 1`).
		WithArgs(to, from, StatusCancelled, "c1", false).
		WillReturnRows(pgxmock.NewRows(appointmentColumns))

	items, err := NewPgxRepository(mock).List(context.Background(), Filter{
		From: from, To: to, CustomerID: "c1", ReminderSent: &notSent, Limit: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListStartsFrom(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 1, 0)

	mock.ExpectQuery(`WHERE a.start_time < \$1 AND a.end_time > \$2 AND a.status <> \$3 AND a.customer_id = \$4 AND a.start_time >= \$5 ORDER BY a.start_time ASC LIMIT 1`).
		WithArgs(to, now, StatusCancelled, "c1", now).
		WillReturnRows(pgxmock.NewRows(appointmentColumns))

	items, err := NewPgxRepository(mock).List(context.Background(), Filter{
		From: now, To: to, StartsFrom: now, CustomerID: "c1", Limit: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateMapsExclusionViolation(t *testing.T) {
	mock := newMock(t)
	start := time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)
	a := &Appointment{
		CustomerID: "c1", ServiceID: "s1", StartTime: start, EndTime: start.Add(30 * time.Minute),
		Status: StatusPending, Price: 25, CreatedBy: SourceManual,
	}

	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(a.CustomerID, a.ServiceID, a.StartTime, a.EndTime, a.Status, a.Price, a.Notes, a.CreatedBy).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ExclusionViolation, ConstraintName: "appointments_no_overlap"})

	err := NewPgxRepository(mock).Create(context.Background(), a)
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateNotFound(t *testing.T) {
	mock := newMock(t)
	start := time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)
	a := &Appointment{ID: "a9", ServiceID: "s1", StartTime: start, EndTime: start.Add(time.Hour), Status: StatusCancelled, Price: 25}

	mock.ExpectQuery(`UPDATE appointments SET .+ WHERE id = \$7 RETURNING updated_at`).
		WithArgs(a.ServiceID, a.StartTime, a.EndTime, a.Status, a.Price, a.Notes, a.ID).
		WillReturnError(pgx.ErrNoRows)

	err := NewPgxRepository(mock).Update(context.Background(), a)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMarkReminderSent(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE appointments SET reminder_sent = \$1 WHERE id = \$2`).
		WithArgs(true, "a1").
		WillReturnResult(pgconn.NewCommandTag("UPDATE 1"))

	require.NoError(t, NewPgxRepository(mock).MarkReminderSent(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
