package reservation

import (
	"context"
	"errors"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/auth"
	"github.com/XCypherusX/tbs-api/internal/db"
	"github.com/XCypherusX/tbs-api/internal/events"
	"github.com/XCypherusX/tbs-api/internal/ground"
	"github.com/XCypherusX/tbs-api/internal/logger"
	"github.com/XCypherusX/tbs-api/internal/metrics"
	"github.com/XCypherusX/tbs-api/internal/timeslot"
)

type Service interface {
	Create(ctx context.Context, caller auth.Caller, req CreateReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, caller auth.Caller, id int) (*Reservation, error)
	Update(ctx context.Context, caller auth.Caller, id int, req UpdateReservationRequest) (*Reservation, error)
	Get(ctx context.Context, caller auth.Caller, id int) (*Reservation, error)
}

// EventSink receives state changes. Dispatch runs inside the writing
// transaction; Committed runs after it commits.
type EventSink interface {
	Dispatch(ctx context.Context, ev events.ReservationStateChanged) error
	Committed(ctx context.Context, evs ...events.ReservationStateChanged)
}

type service struct {
	repo    Repository
	grounds ground.Repository
	slots   timeslot.Repository
	tx      db.TxRunner
	events  EventSink
}

func NewService(
	repo Repository,
	grounds ground.Repository,
	slots timeslot.Repository,
	tx db.TxRunner,
	sink EventSink,
) Service {
	return &service{
		repo:    repo,
		grounds: grounds,
		slots:   slots,
		tx:      tx,
		events:  sink,
	}
}

func (s *service) Create(ctx context.Context, caller auth.Caller, req CreateReservationRequest) (*Reservation, error) {
	userID := caller.UserID
	if req.UserID != nil && *req.UserID != caller.UserID {
		if !caller.IsAdmin() {
			metrics.RecordReservation(metrics.ResultRejected)
			return nil, ErrForbidden
		}
		userID = *req.UserID
	}
	if userID <= 0 || req.GroundID <= 0 || req.TimeSlotID <= 0 {
		metrics.RecordReservation(metrics.ResultRejected)
		return nil, ErrInvalidIDs
	}

	var (
		created *Reservation
		emitted []events.ReservationStateChanged
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockPair(ctx, req.GroundID, req.TimeSlotID); err != nil {
			return err
		}
		if err := s.checkBookable(ctx, req.GroundID, req.TimeSlotID, 0); err != nil {
			return err
		}

		var err error
		created, err = s.repo.Create(ctx, userID, req.GroundID, req.TimeSlotID)
		if err != nil {
			return err
		}

		ev := events.NewReservationStateChanged(created.ID, created.UserID, created.GroundID, created.TimeSlotID, true)
		if err := s.events.Dispatch(ctx, ev); err != nil {
			return err
		}
		emitted = append(emitted, ev)
		return nil
	})
	if err != nil {
		metrics.RecordReservation(createResult(err))
		return nil, err
	}

	metrics.RecordReservation(metrics.ResultCreated)
	logger.Info("reservation created",
		"reservation_id", created.ID,
		"user_id", created.UserID,
		"ground_id", created.GroundID,
		"time_slot_id", created.TimeSlotID,
	)
	s.events.Committed(ctx, emitted...)
	return created, nil
}

func (s *service) Cancel(ctx context.Context, caller auth.Caller, id int) (*Reservation, error) {
	var (
		result  *Reservation
		emitted []events.ReservationStateChanged
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !caller.CanActFor(current.UserID) {
			return ErrForbidden
		}
		if !current.IsActive {
			result = current
			return nil
		}

		result, err = s.repo.SetActive(ctx, id, false)
		if err != nil {
			return err
		}

		ev := events.NewReservationStateChanged(result.ID, result.UserID, result.GroundID, result.TimeSlotID, false)
		if err := s.events.Dispatch(ctx, ev); err != nil {
			return err
		}
		emitted = append(emitted, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(emitted) > 0 {
		metrics.RecordCancellation()
		logger.Info("reservation cancelled", "reservation_id", id, "by_user_id", caller.UserID)
		s.events.Committed(ctx, emitted...)
	}
	return result, nil
}

// Update is the administrative rewrite of a reservation. Moving an active
// reservation frees its old pair and claims the new one in the same
// transaction.
func (s *service) Update(ctx context.Context, caller auth.Caller, id int, req UpdateReservationRequest) (*Reservation, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	var (
		updated *Reservation
		emitted []events.ReservationStateChanged
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next := *current
		if req.UserID != nil {
			next.UserID = *req.UserID
		}
		if req.GroundID != nil {
			next.GroundID = *req.GroundID
		}
		if req.TimeSlotID != nil {
			next.TimeSlotID = *req.TimeSlotID
		}
		if req.IsActive != nil {
			next.IsActive = *req.IsActive
		}
		if next.UserID <= 0 || next.GroundID <= 0 || next.TimeSlotID <= 0 {
			return ErrInvalidIDs
		}

		pairChanged := next.GroundID != current.GroundID || next.TimeSlotID != current.TimeSlotID
		activeChanged := next.IsActive != current.IsActive
		// claims is true when the row takes a pair it did not hold before.
		claims := next.IsActive && (pairChanged || activeChanged)

		if claims {
			if err := s.repo.LockPair(ctx, next.GroundID, next.TimeSlotID); err != nil {
				return err
			}
		}
		if claims || next.GroundID != current.GroundID {
			g, err := s.grounds.GetForShare(ctx, next.GroundID)
			if err != nil {
				return err
			}
			if claims && !g.Active {
				return ground.ErrInactive
			}
		}
		if claims || next.TimeSlotID != current.TimeSlotID {
			if _, err := s.slots.GetForShare(ctx, next.TimeSlotID); err != nil {
				return err
			}
		}
		if claims {
			taken, err := s.repo.ActiveExists(ctx, next.GroundID, next.TimeSlotID, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlotAlreadyBooked
			}
		}

		updated, err = s.repo.Update(ctx, &next)
		if err != nil {
			return err
		}

		if current.IsActive && pairChanged {
			emitted = append(emitted, events.NewReservationStateChanged(
				current.ID, current.UserID, current.GroundID, current.TimeSlotID, false))
		}
		if updated.IsActive || activeChanged {
			emitted = append(emitted, events.NewReservationStateChanged(
				updated.ID, updated.UserID, updated.GroundID, updated.TimeSlotID, updated.IsActive))
		}
		for _, ev := range emitted {
			if err := s.events.Dispatch(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reservation updated", "reservation_id", id, "is_active", updated.IsActive)
	s.events.Committed(ctx, emitted...)
	return updated, nil
}

func (s *service) Get(ctx context.Context, caller auth.Caller, id int) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanActFor(res.UserID) {
		return nil, ErrForbidden
	}
	return res, nil
}

// checkBookable must run while the pair lock is held. The ground and slot
// rows stay share-locked until commit so they cannot be deactivated or
// rewritten underneath the new reservation.
func (s *service) checkBookable(ctx context.Context, groundID, timeSlotID, excludeID int) error {
	g, err := s.grounds.GetForShare(ctx, groundID)
	if err != nil {
		return err
	}
	if !g.Active {
		return ground.ErrInactive
	}

	if _, err := s.slots.GetForShare(ctx, timeSlotID); err != nil {
		return err
	}

	taken, err := s.repo.ActiveExists(ctx, groundID, timeSlotID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotAlreadyBooked
	}
	return nil
}

func createResult(err error) string {
	switch {
	case errors.Is(err, apperr.SlotAlreadyBooked):
		return metrics.ResultConflict
	case errors.Is(err, apperr.Unavailable), apperr.KindOf(err) == apperr.KindInternal:
		return metrics.ResultError
	}
	return metrics.ResultRejected
}
