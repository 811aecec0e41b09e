package timeslot

import (
	"context"
	"strings"
	"time"

	"github.com/XCypherusX/tbs-api/internal/db"
	"github.com/XCypherusX/tbs-api/internal/logger"
)

type Service interface {
	Create(ctx context.Context, req TimeSlotRequest) (*TimeSlot, error)
	Get(ctx context.Context, id int) (*TimeSlot, error)
	List(ctx context.Context) ([]TimeSlot, error)
	Update(ctx context.Context, id int, req TimeSlotRequest) (*TimeSlot, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
	tx   db.TxRunner
}

func NewService(repo Repository, tx db.TxRunner) Service {
	return &service{
		repo: repo,
		tx:   tx,
	}
}

func (s *service) Create(ctx context.Context, req TimeSlotRequest) (*TimeSlot, error) {
	start, end, err := parseRange(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.StartExists(ctx, start, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateStart
	}

	slot, err := s.repo.Create(ctx, start, end)
	if err != nil {
		return nil, err
	}

	logger.Info("time slot created", "time_slot_id", slot.ID, "start_time", slot.StartTime)
	return slot, nil
}

func (s *service) Get(ctx context.Context, id int) (*TimeSlot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]TimeSlot, error) {
	return s.repo.List(ctx)
}

// Update rewrites the window of a slot no reservation points at. A slot that
// has ever been booked is frozen so reservation history keeps its meaning.
func (s *service) Update(ctx context.Context, id int, req TimeSlotRequest) (*TimeSlot, error) {
	start, end, err := parseRange(req)
	if err != nil {
		return nil, err
	}

	var updated *TimeSlot
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.ensureUnreferenced(ctx, id); err != nil {
			return err
		}

		exists, err := s.repo.StartExists(ctx, start, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateStart
		}

		updated, err = s.repo.Update(ctx, id, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.ensureUnreferenced(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info("time slot deleted", "time_slot_id", id)
	return nil
}

func (s *service) ensureUnreferenced(ctx context.Context, id int) error {
	referenced, err := s.repo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrInUse
	}
	return nil
}

func parseRange(req TimeSlotRequest) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTime
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EndTime))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTime
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start.UTC(), end.UTC(), nil
}
