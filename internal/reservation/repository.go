package reservation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/db"

	"github.com/jmoiron/sqlx"
)

const activePairIndex = "reservations_active_pair_uidx"

const columns = `id, user_id, ground_id, time_slot_id, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LockPair(ctx context.Context, groundID, timeSlotID int) error {
	_, err := db.Q(ctx, r.db).ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, groundID, timeSlotID)
	if err != nil {
		return apperr.Wrap(err, "failed to lock reservation pair")
	}
	return nil
}

func (r *repository) ActiveExists(ctx context.Context, groundID, timeSlotID, excludeID int) (bool, error) {
	exists, err := db.Exists(ctx, db.Q(ctx, r.db), `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE ground_id = $1 AND time_slot_id = $2 AND is_active AND id <> $3
		)`, groundID, timeSlotID, excludeID)
	if err != nil {
		return false, apperr.Wrap(err, "failed to check active reservations")
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, userID, groundID, timeSlotID int) (*Reservation, error) {
	query := `
		INSERT INTO reservations (user_id, ground_id, time_slot_id, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING ` + columns

	var res Reservation
	err := db.Q(ctx, r.db).GetContext(ctx, &res, query, userID, groundID, timeSlotID)
	if err != nil {
		return nil, mapWriteError(err, "failed to create reservation")
	}

	return &res, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reservation, error) {
	return r.get(ctx, `SELECT `+columns+` FROM reservations WHERE id = $1`, id)
}

func (r *repository) GetForUpdate(ctx context.Context, id int) (*Reservation, error) {
	return r.get(ctx, `SELECT `+columns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)
}

func (r *repository) get(ctx context.Context, query string, id int) (*Reservation, error) {
	var res Reservation
	err := db.Q(ctx, r.db).GetContext(ctx, &res, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(err, "failed to load reservation")
	}
	return &res, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + columns

	var res Reservation
	err := db.Q(ctx, r.db).GetContext(ctx, &res, query, active, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapWriteError(err, "failed to update reservation")
	}
	return &res, nil
}

func (r *repository) Update(ctx context.Context, in *Reservation) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET user_id = $1, ground_id = $2, time_slot_id = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + columns

	var res Reservation
	err := db.Q(ctx, r.db).GetContext(ctx, &res, query, in.UserID, in.GroundID, in.TimeSlotID, in.IsActive, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapWriteError(err, "failed to update reservation")
	}
	return &res, nil
}

func mapWriteError(err error, message string) error {
	switch {
	case db.IsUniqueViolation(err, activePairIndex):
		return ErrSlotAlreadyBooked
	case db.IsForeignKeyViolation(err):
		return ErrUnknownUser
	}
	return apperr.Wrap(err, message)
}
