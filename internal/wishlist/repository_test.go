package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/XCypherusX/tbs-api/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewRepository(sqlx.NewDb(conn, "sqlmock")), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO wishlist_entries`).
		WithArgs(7, 1, 12, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ground_id", "reservation_id", "is_available", "created_at", "updated_at"}).
			AddRow(1, 7, 1, 12, false, now, now))

	entry, err := repo.Create(context.Background(), 7, 1, 12, false)
	require.NoError(t, err)
	assert.Equal(t, 12, entry.ReservationID)

	mock.ExpectQuery(`INSERT INTO wishlist_entries`).
		WithArgs(999, 1, 12, false).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err = repo.Create(context.Background(), 999, 1, 12, false)
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestRepository_SyncPair(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE wishlist_entries w SET is_available = pair.free`).
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.SyncPair(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReconcileAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE wishlist_entries w (.+) RETURNING w.id AS entry_id`).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "ground_id", "time_slot_id", "is_available"}).
			AddRow(4, 1, 10, true).
			AddRow(6, 2, 11, false))

	flips, err := repo.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Len(t, flips, 2)
	assert.Equal(t, Flip{EntryID: 4, GroundID: 1, TimeSlotID: 10, IsAvailable: true}, flips[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AvailableWatchers(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM wishlist_entries w`).
		WithArgs(1, 10).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "user_id", "email", "full_name", "ground_name", "start_time"}).
			AddRow(1, 7, "a@example.com", "A", "FieldA", start))

	watchers, err := repo.AvailableWatchers(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, watchers, 1)
	assert.Equal(t, "FieldA", watchers[0].GroundName)
}
