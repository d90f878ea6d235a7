package gallery

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryListNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	thumb := "gallery/ab/ab_thumb.jpg"
	mock.ExpectQuery(`SELECT .+, count\(\*\) OVER\(\) AS total_count FROM gallery_items ORDER BY created_at DESC LIMIT 2 OFFSET 2`).
		WillReturnRows(pgxmock.NewRows(append(itemColumns, "total_count")).
			AddRow("ab", (*string)(nil), (*string)(nil), "fade.png", "gallery/ab/ab.png", &thumb, "image/png", int64(2048), now, 3))

	items, total, err := NewPgxRepository(mock).List(context.Background(), Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, thumb, *items[0].ThumbnailPath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM gallery_items WHERE id = \$1`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err = NewPgxRepository(mock).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM gallery_items WHERE id = \$1`).WithArgs("missing").
		WillReturnResult(pgconn.NewCommandTag("DELETE 0"))

	assert.ErrorIs(t, NewPgxRepository(mock).Delete(context.Background(), "missing"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
