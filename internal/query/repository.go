package query

import (
	"context"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/db"

	"github.com/jmoiron/sqlx"
)

const reservationDetailsSelect = `
	SELECT r.id AS reservation_id, r.is_active, r.created_at, r.updated_at,
	       r.user_id, u.full_name AS user_name, u.email AS user_email, u.contact AS user_contact,
	       r.ground_id, g.name AS ground_name, g.description AS ground_description, g.rate AS ground_rate,
	       r.time_slot_id, ts.start_time, ts.end_time
	FROM reservations r
	LEFT JOIN users u ON u.id = r.user_id
	LEFT JOIN grounds g ON g.id = r.ground_id
	LEFT JOIN time_slots ts ON ts.id = r.time_slot_id
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ReservationsByUser(ctx context.Context, userID int, active *bool) ([]ReservationDetails, error) {
	query := reservationDetailsSelect + `
	WHERE r.user_id = $1 AND ($2::boolean IS NULL OR r.is_active = $2)
	ORDER BY ts.start_time NULLS LAST, r.id
	`

	rows := []ReservationDetails{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &rows, query, userID, active); err != nil {
		return nil, apperr.Wrap(err, "failed to list reservations")
	}
	return rows, nil
}

func (r *repository) ReservationsByGround(ctx context.Context, groundID int, active *bool) ([]ReservationDetails, error) {
	query := reservationDetailsSelect + `
	WHERE r.ground_id = $1 AND ($2::boolean IS NULL OR r.is_active = $2)
	ORDER BY ts.start_time NULLS LAST, r.id
	`

	rows := []ReservationDetails{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &rows, query, groundID, active); err != nil {
		return nil, apperr.Wrap(err, "failed to list reservations")
	}
	return rows, nil
}

func (r *repository) WishlistByUser(ctx context.Context, userID int, available *bool) ([]WishlistDetails, error) {
	query := `
	SELECT w.id AS entry_id, w.is_available, w.created_at,
	       w.user_id, u.full_name AS user_name, u.email AS user_email,
	       w.ground_id, g.name AS ground_name,
	       w.reservation_id, r.is_active AS reservation_active,
	       r.time_slot_id, ts.start_time, ts.end_time
	FROM wishlist_entries w
	LEFT JOIN users u ON u.id = w.user_id
	LEFT JOIN grounds g ON g.id = w.ground_id
	LEFT JOIN reservations r ON r.id = w.reservation_id
	LEFT JOIN time_slots ts ON ts.id = r.time_slot_id
	WHERE w.user_id = $1 AND ($2::boolean IS NULL OR w.is_available = $2)
	ORDER BY w.id
	`

	rows := []WishlistDetails{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &rows, query, userID, available); err != nil {
		return nil, apperr.Wrap(err, "failed to list wishlist")
	}
	return rows, nil
}

func (r *repository) SlotsForGround(ctx context.Context, groundID int) ([]SlotAvailability, error) {
	query := `
	SELECT ts.id AS time_slot_id, ts.start_time, ts.end_time,
	       (r.id IS NOT NULL) AS is_booked, r.id AS reservation_id
	FROM time_slots ts
	LEFT JOIN reservations r
	       ON r.time_slot_id = ts.id AND r.ground_id = $1 AND r.is_active
	ORDER BY ts.start_time
	`

	rows := []SlotAvailability{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &rows, query, groundID); err != nil {
		return nil, apperr.Wrap(err, "failed to load slot availability")
	}
	return rows, nil
}
