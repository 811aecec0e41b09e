package query

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
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

var reservationDetailColumns = []string{
	"reservation_id", "is_active", "created_at", "updated_at",
	"user_id", "user_name", "user_email", "user_contact",
	"ground_id", "ground_name", "ground_description", "ground_rate",
	"time_slot_id", "start_time", "end_time",
}

func TestRepository_ReservationsByUserToleratesDanglingJoins(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	start := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)
	active := true

	mock.ExpectQuery(`FROM reservations r LEFT JOIN users u`).
		WithArgs(7, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(reservationDetailColumns).
			AddRow(100, true, now, now, 7, "Jo", "jo@example.com", "555", 1, "FieldA", "turf", 100.0, 10, start, start.Add(time.Hour)).
			AddRow(101, true, now, now, 7, "Jo", "jo@example.com", "555", 9, nil, nil, nil, 10, start, start.Add(time.Hour)))

	rows, err := repo.ReservationsByUser(context.Background(), 7, &active)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].GroundName)
	assert.Equal(t, "FieldA", *rows[0].GroundName)
	assert.Nil(t, rows[1].GroundName)
	assert.Equal(t, 9, rows[1].GroundID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WishlistByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM wishlist_entries w`).
		WithArgs(7, nil).
		WillReturnRows(sqlmock.NewRows([]string{
			"entry_id", "is_available", "created_at",
			"user_id", "user_name", "user_email",
			"ground_id", "ground_name",
			"reservation_id", "reservation_active",
			"time_slot_id", "start_time", "end_time",
		}).AddRow(1, false, now, 7, "Jo", "jo@example.com", 1, "FieldA", 12, true, 10, now, now))

	rows, err := repo.WishlistByUser(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsAvailable)
	require.NotNil(t, rows[0].ReservationActive)
	assert.True(t, *rows[0].ReservationActive)
}

func TestRepository_SlotsForGround(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM time_slots ts LEFT JOIN reservations r`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"time_slot_id", "start_time", "end_time", "is_booked", "reservation_id"}).
			AddRow(10, start, start.Add(time.Hour), true, 100).
			AddRow(11, start.Add(time.Hour), start.Add(2*time.Hour), false, nil))

	slots, err := repo.SlotsForGround(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].IsBooked)
	assert.Nil(t, slots[1].ReservationID)
}
