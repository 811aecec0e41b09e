package timeslot

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
	start := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`INSERT INTO time_slots`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "created_at"}).
			AddRow(1, start, end, time.Now()))

	slot, err := repo.Create(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, slot.ID)
	assert.True(t, slot.StartTime.Equal(start))

	mock.ExpectQuery(`INSERT INTO time_slots`).
		WithArgs(start, end).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "time_slots_start_time_key"})

	_, err = repo.Create(context.Background(), start, end)
	assert.ErrorIs(t, err, apperr.DuplicateStart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOrdered(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM time_slots ORDER BY start_time ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "created_at"}).
			AddRow(2, start, start.Add(time.Hour), time.Now()).
			AddRow(1, start.Add(time.Hour), start.Add(2*time.Hour), time.Now()))

	slots, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 2, slots[0].ID)
}

func TestRepository_DeleteReferenced(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM time_slots WHERE id = \$1`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), apperr.TimeSlotInUse)
}

func TestRepository_GetForUpdateLocksRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM time_slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "created_at"}).
			AddRow(1, start, start.Add(time.Hour), start))

	slot, err := repo.GetForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, start, slot.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}
