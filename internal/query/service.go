package query

import (
	"context"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/auth"
	"github.com/XCypherusX/tbs-api/internal/ground"
)

var ErrForbidden = apperr.New(apperr.KindForbidden, "not allowed to view another user's data")

// Service is the read side. It never writes and never takes locks.
type Service interface {
	ReservationsByUser(ctx context.Context, caller auth.Caller, userID int, active *bool) ([]ReservationDetails, error)
	ReservationsByGround(ctx context.Context, groundID int, active *bool) ([]ReservationDetails, error)
	WishlistByUser(ctx context.Context, caller auth.Caller, userID int, available *bool) ([]WishlistDetails, error)
	GroundAvailability(ctx context.Context, groundID int) (*GroundAvailability, error)
}

type service struct {
	repo    Repository
	grounds ground.Repository
}

func NewService(repo Repository, grounds ground.Repository) Service {
	return &service{
		repo:    repo,
		grounds: grounds,
	}
}

func (s *service) ReservationsByUser(ctx context.Context, caller auth.Caller, userID int, active *bool) ([]ReservationDetails, error) {
	if !caller.CanActFor(userID) {
		return nil, ErrForbidden
	}
	return s.repo.ReservationsByUser(ctx, userID, active)
}

func (s *service) ReservationsByGround(ctx context.Context, groundID int, active *bool) ([]ReservationDetails, error) {
	return s.repo.ReservationsByGround(ctx, groundID, active)
}

func (s *service) WishlistByUser(ctx context.Context, caller auth.Caller, userID int, available *bool) ([]WishlistDetails, error) {
	if !caller.CanActFor(userID) {
		return nil, ErrForbidden
	}
	return s.repo.WishlistByUser(ctx, userID, available)
}

func (s *service) GroundAvailability(ctx context.Context, groundID int) (*GroundAvailability, error) {
	g, err := s.grounds.GetByID(ctx, groundID)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.SlotsForGround(ctx, groundID)
	if err != nil {
		return nil, err
	}

	return &GroundAvailability{
		GroundID: g.ID,
		Name:     g.Name,
		Active:   g.Active,
		Slots:    slots,
	}, nil
}
