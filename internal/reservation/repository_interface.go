package reservation

import "context"

type Repository interface {
	// LockPair serializes writers on one (ground, time slot) pair until the
	// surrounding transaction ends.
	LockPair(ctx context.Context, groundID, timeSlotID int) error
	ActiveExists(ctx context.Context, groundID, timeSlotID, excludeID int) (bool, error)
	Create(ctx context.Context, userID, groundID, timeSlotID int) (*Reservation, error)
	GetByID(ctx context.Context, id int) (*Reservation, error)
	GetForUpdate(ctx context.Context, id int) (*Reservation, error)
	SetActive(ctx context.Context, id int, active bool) (*Reservation, error)
	Update(ctx context.Context, r *Reservation) (*Reservation, error)
}
