package user

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

func TestRepositoryGetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	name := "Joan"

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("joan@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("u1", "joan@example.com", "hash", &name, RoleAdmin, true, created, (*time.Time)(nil)))

	u, err := repo.GetByEmail(context.Background(), "joan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "Joan", *u.DisplayName)
	assert.Nil(t, u.LastLoginAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("joan@example.com", "hash", (*string)(nil), RoleBarber, true).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.Create(context.Background(), &User{Email: "joan@example.com", PasswordHash: "hash", Role: RoleBarber, IsActive: true})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateLastLoginMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)
	at := time.Now()

	mock.ExpectExec(`UPDATE users SET last_login_at = \$1 WHERE id = \$2`).
		WithArgs(at, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateLastLogin(context.Background(), "missing", at)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
