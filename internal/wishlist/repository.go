package wishlist

import (
	"context"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/db"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID, groundID, reservationID int, available bool) (*Entry, error) {
	query := `
		INSERT INTO wishlist_entries (user_id, ground_id, reservation_id, is_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, ground_id, reservation_id, is_available, created_at, updated_at
	`

	var e Entry
	err := db.Q(ctx, r.db).GetContext(ctx, &e, query, userID, groundID, reservationID, available)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, apperr.New(apperr.KindNotFound, "referenced user, ground or reservation not found")
		}
		return nil, apperr.Wrap(err, "failed to create wishlist entry")
	}

	return &e, nil
}

func (r *repository) SyncPair(ctx context.Context, groundID, timeSlotID int) (int64, error) {
	query := `
		WITH pair AS (
			SELECT NOT EXISTS (
				SELECT 1 FROM reservations
				WHERE ground_id = $1 AND time_slot_id = $2 AND is_active
			) AS free
		)
		UPDATE wishlist_entries w
		SET is_available = pair.free, updated_at = NOW()
		FROM reservations r, pair
		WHERE w.reservation_id = r.id
		  AND r.ground_id = $1
		  AND r.time_slot_id = $2
		  AND w.is_available <> pair.free
	`

	result, err := db.Q(ctx, r.db).ExecContext(ctx, query, groundID, timeSlotID)
	if err != nil {
		return 0, apperr.Wrap(err, "failed to sync wishlist availability")
	}
	return result.RowsAffected()
}

func (r *repository) ReconcileAll(ctx context.Context) ([]Flip, error) {
	query := `
		UPDATE wishlist_entries w
		SET is_available = NOT EXISTS (
				SELECT 1 FROM reservations a
				WHERE a.ground_id = r.ground_id AND a.time_slot_id = r.time_slot_id AND a.is_active
			),
			updated_at = NOW()
		FROM reservations r
		WHERE w.reservation_id = r.id
		  AND w.is_available = EXISTS (
				SELECT 1 FROM reservations a
				WHERE a.ground_id = r.ground_id AND a.time_slot_id = r.time_slot_id AND a.is_active
			)
		RETURNING w.id AS entry_id, r.ground_id, r.time_slot_id, w.is_available
	`

	flips := []Flip{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &flips, query); err != nil {
		return nil, apperr.Wrap(err, "failed to reconcile wishlist availability")
	}
	return flips, nil
}

func (r *repository) AvailableWatchers(ctx context.Context, groundID, timeSlotID int) ([]Watcher, error) {
	query := `
		SELECT w.id AS entry_id, u.id AS user_id, u.email, u.full_name,
		       g.name AS ground_name, ts.start_time
		FROM wishlist_entries w
		JOIN reservations r ON r.id = w.reservation_id
		JOIN users u ON u.id = w.user_id
		JOIN grounds g ON g.id = r.ground_id
		JOIN time_slots ts ON ts.id = r.time_slot_id
		WHERE r.ground_id = $1 AND r.time_slot_id = $2 AND w.is_available
		ORDER BY w.id
	`

	watchers := []Watcher{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &watchers, query, groundID, timeSlotID); err != nil {
		return nil, apperr.Wrap(err, "failed to load wishlist watchers")
	}
	return watchers, nil
}
