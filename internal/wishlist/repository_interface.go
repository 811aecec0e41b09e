package wishlist

import "context"

type Repository interface {
	Create(ctx context.Context, userID, groundID, reservationID int, available bool) (*Entry, error)
	// SyncPair re-derives availability for every entry whose reservation sits
	// on the pair and returns how many entries changed.
	SyncPair(ctx context.Context, groundID, timeSlotID int) (int64, error)
	// ReconcileAll re-derives availability for every entry and returns the
	// entries it changed.
	ReconcileAll(ctx context.Context) ([]Flip, error)
	AvailableWatchers(ctx context.Context, groundID, timeSlotID int) ([]Watcher, error)
}
