package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/db"

	"github.com/jmoiron/sqlx"
)

const startConstraint = "time_slots_start_time_key"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, start, end time.Time) (*TimeSlot, error) {
	query := `
		INSERT INTO time_slots (start_time, end_time)
		VALUES ($1, $2)
		RETURNING id, start_time, end_time, created_at
	`

	var slot TimeSlot
	err := db.Q(ctx, r.db).GetContext(ctx, &slot, query, start, end)
	if err != nil {
		if db.IsUniqueViolation(err, startConstraint) {
			return nil, ErrDuplicateStart
		}
		return nil, apperr.Wrap(err, "failed to create time slot")
	}

	return &slot, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*TimeSlot, error) {
	return r.get(ctx, id, "")
}

func (r *repository) GetForShare(ctx context.Context, id int) (*TimeSlot, error) {
	return r.get(ctx, id, " FOR SHARE")
}

// GetForUpdate also conflicts with the key-share lock a reservation insert
// takes through its foreign key.
func (r *repository) GetForUpdate(ctx context.Context, id int) (*TimeSlot, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *repository) get(ctx context.Context, id int, lock string) (*TimeSlot, error) {
	query := `SELECT id, start_time, end_time, created_at FROM time_slots WHERE id = $1` + lock

	var slot TimeSlot
	err := db.Q(ctx, r.db).GetContext(ctx, &slot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(err, "failed to load time slot")
	}

	return &slot, nil
}

func (r *repository) List(ctx context.Context) ([]TimeSlot, error) {
	query := `SELECT id, start_time, end_time, created_at FROM time_slots ORDER BY start_time ASC`

	slots := []TimeSlot{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &slots, query); err != nil {
		return nil, apperr.Wrap(err, "failed to list time slots")
	}

	return slots, nil
}

func (r *repository) StartExists(ctx context.Context, start time.Time, excludeID int) (bool, error) {
	exists, err := db.Exists(ctx, db.Q(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM time_slots WHERE start_time = $1 AND id <> $2)`,
		start, excludeID,
	)
	if err != nil {
		return false, apperr.Wrap(err, "failed to check time slot start")
	}
	return exists, nil
}

func (r *repository) Update(ctx context.Context, id int, start, end time.Time) (*TimeSlot, error) {
	query := `
		UPDATE time_slots
		SET start_time = $1, end_time = $2
		WHERE id = $3
		RETURNING id, start_time, end_time, created_at
	`

	var slot TimeSlot
	err := db.Q(ctx, r.db).GetContext(ctx, &slot, query, start, end, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case db.IsUniqueViolation(err, startConstraint):
			return nil, ErrDuplicateStart
		}
		return nil, apperr.Wrap(err, "failed to update time slot")
	}

	return &slot, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := db.Q(ctx, r.db).ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return apperr.Wrap(err, "failed to delete time slot")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(err, "failed to delete time slot")
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) IsReferenced(ctx context.Context, id int) (bool, error) {
	exists, err := db.Exists(ctx, db.Q(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE time_slot_id = $1)`, id)
	if err != nil {
		return false, apperr.Wrap(err, "failed to check time slot references")
	}
	return exists, nil
}
