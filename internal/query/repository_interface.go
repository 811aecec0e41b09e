package query

import "context"

type Repository interface {
	ReservationsByUser(ctx context.Context, userID int, active *bool) ([]ReservationDetails, error)
	ReservationsByGround(ctx context.Context, groundID int, active *bool) ([]ReservationDetails, error)
	WishlistByUser(ctx context.Context, userID int, available *bool) ([]WishlistDetails, error)
	SlotsForGround(ctx context.Context, groundID int) ([]SlotAvailability, error)
}
