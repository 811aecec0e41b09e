package wishlist

import (
	"context"
	"time"

	"github.com/XCypherusX/tbs-api/internal/auth"
	"github.com/XCypherusX/tbs-api/internal/db"
	"github.com/XCypherusX/tbs-api/internal/events"
	"github.com/XCypherusX/tbs-api/internal/logger"
	"github.com/XCypherusX/tbs-api/internal/metrics"
	"github.com/XCypherusX/tbs-api/internal/reservation"
)

const (
	sourceEvent     = "event"
	sourceResync    = "resync"
	sourceReconcile = "reconcile"
)

type Service interface {
	Create(ctx context.Context, caller auth.Caller, req CreateEntryRequest) (*Entry, error)
	OnReservationStateChanged(ctx context.Context, ev events.ReservationStateChanged) error
	NotifyAvailability(ctx context.Context, ev events.ReservationStateChanged) error
	Resync(ctx context.Context, reservationID int) (*SyncResult, error)
	Reconcile(ctx context.Context) (int64, error)
}

// Notifier delivers "your watched slot is free" messages.
type Notifier interface {
	SendAvailabilityOpened(ctx context.Context, to, name, groundName string, start time.Time) error
}

type service struct {
	repo         Repository
	reservations reservation.Repository
	tx           db.TxRunner
	notifier     Notifier
}

func NewService(repo Repository, reservations reservation.Repository, tx db.TxRunner, notifier Notifier) Service {
	return &service{
		repo:         repo,
		reservations: reservations,
		tx:           tx,
		notifier:     notifier,
	}
}

func (s *service) Create(ctx context.Context, caller auth.Caller, req CreateEntryRequest) (*Entry, error) {
	userID := caller.UserID
	if req.UserID != nil && *req.UserID != caller.UserID {
		if !caller.IsAdmin() {
			return nil, ErrForbidden
		}
		userID = *req.UserID
	}
	if userID <= 0 || req.GroundID <= 0 || req.ReservationID <= 0 {
		return nil, ErrInvalidIDs
	}

	var created *Entry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		res, err := s.reservations.GetByID(ctx, req.ReservationID)
		if err != nil {
			return err
		}
		if res.GroundID != req.GroundID {
			return ErrGroundMismatch
		}

		held, err := s.reservations.ActiveExists(ctx, res.GroundID, res.TimeSlotID, 0)
		if err != nil {
			return err
		}

		created, err = s.repo.Create(ctx, userID, req.GroundID, req.ReservationID, !held)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("wishlist entry created",
		"entry_id", created.ID,
		"user_id", created.UserID,
		"reservation_id", created.ReservationID,
		"is_available", created.IsAvailable,
	)
	return created, nil
}

// OnReservationStateChanged runs inside the ledger's transaction. Recomputing
// from the ledger instead of copying ev.IsActive keeps redelivery harmless.
func (s *service) OnReservationStateChanged(ctx context.Context, ev events.ReservationStateChanged) error {
	n, err := s.repo.SyncPair(ctx, ev.GroundID, ev.TimeSlotID)
	if err != nil {
		return err
	}

	metrics.RecordWishlistFlips(sourceEvent, n)
	if n > 0 {
		logger.Debug("wishlist availability synced",
			"event_id", ev.EventID,
			"ground_id", ev.GroundID,
			"time_slot_id", ev.TimeSlotID,
			"updated", n,
		)
	}
	return nil
}

// NotifyAvailability runs after commit and queues a message for every watcher
// of a pair that has just been freed.
func (s *service) NotifyAvailability(ctx context.Context, ev events.ReservationStateChanged) error {
	if ev.IsActive {
		return nil
	}
	return s.notifyWatchers(ctx, ev.GroundID, ev.TimeSlotID, nil)
}

// notifyWatchers queues a message for the available watchers of a pair,
// restricted to entries in only when it is non-nil.
func (s *service) notifyWatchers(ctx context.Context, groundID, timeSlotID int, only map[int]bool) error {
	if s.notifier == nil {
		return nil
	}

	watchers, err := s.repo.AvailableWatchers(ctx, groundID, timeSlotID)
	if err != nil {
		return err
	}

	for _, w := range watchers {
		if only != nil && !only[w.EntryID] {
			continue
		}
		if err := s.notifier.SendAvailabilityOpened(ctx, w.Email, w.FullName, w.GroundName, w.StartTime); err != nil {
			logger.Error("failed to queue availability notification",
				"entry_id", w.EntryID,
				"user_id", w.UserID,
				"error", err,
			)
		}
	}
	return nil
}

func (s *service) Resync(ctx context.Context, reservationID int) (*SyncResult, error) {
	var n int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		res, err := s.reservations.GetByID(ctx, reservationID)
		if err != nil {
			return err
		}
		n, err = s.repo.SyncPair(ctx, res.GroundID, res.TimeSlotID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWishlistFlips(sourceResync, n)
	logger.Info("wishlist resynced", "reservation_id", reservationID, "updated", n)
	return &SyncResult{ReservationID: reservationID, Updated: n}, nil
}

// Reconcile repairs entries a lost event left stale. Entries it frees get
// the notification the missed after-commit effect would have sent.
func (s *service) Reconcile(ctx context.Context) (int64, error) {
	flips, err := s.repo.ReconcileAll(ctx)
	if err != nil {
		return 0, err
	}
	n := int64(len(flips))
	metrics.RecordWishlistFlips(sourceReconcile, n)

	type pair struct{ groundID, timeSlotID int }
	freed := map[pair]map[int]bool{}
	for _, f := range flips {
		if !f.IsAvailable {
			continue
		}
		p := pair{f.GroundID, f.TimeSlotID}
		if freed[p] == nil {
			freed[p] = map[int]bool{}
		}
		freed[p][f.EntryID] = true
	}

	for p, entries := range freed {
		if err := s.notifyWatchers(ctx, p.groundID, p.timeSlotID, entries); err != nil {
			logger.Error("failed to notify reconciled watchers",
				"ground_id", p.groundID,
				"time_slot_id", p.timeSlotID,
				"error", err,
			)
		}
	}
	return n, nil
}
