// Package events carries reservation state transitions from the ledger to
// the components that react to them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/XCypherusX/tbs-api/internal/logger"
)

const RoutingKeyReservationStateChanged = "reservation.state_changed"

// ReservationStateChanged is emitted whenever a reservation starts or stops
// holding its (ground, time slot) pair.
type ReservationStateChanged struct {
	EventID       string    `json:"event_id"`
	ReservationID int       `json:"reservation_id"`
	UserID        int       `json:"user_id"`
	GroundID      int       `json:"ground_id"`
	TimeSlotID    int       `json:"time_slot_id"`
	IsActive      bool      `json:"is_active"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationStateChanged(reservationID, userID, groundID, timeSlotID int, isActive bool) ReservationStateChanged {
	return ReservationStateChanged{
		EventID:       uuid.NewString(),
		ReservationID: reservationID,
		UserID:        userID,
		GroundID:      groundID,
		TimeSlotID:    timeSlotID,
		IsActive:      isActive,
		OccurredAt:    time.Now().UTC(),
	}
}

type Handler func(ctx context.Context, ev ReservationStateChanged) error

// Bus fans events out to two kinds of subscribers. Transactional handlers run
// synchronously inside the emitting transaction and can abort it. After-commit
// handlers run once the transaction has committed; their failures are logged
// and never reach the caller.
type Bus struct {
	mu          sync.RWMutex
	inTx        []Handler
	afterCommit []namedHandler
}

type namedHandler struct {
	name string
	fn   Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inTx = append(b.inTx, h)
}

func (b *Bus) SubscribeAfterCommit(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.afterCommit = append(b.afterCommit, namedHandler{name: name, fn: h})
}

// Dispatch runs the transactional handlers in subscription order and stops
// at the first error.
func (b *Bus) Dispatch(ctx context.Context, ev ReservationStateChanged) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.inTx...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Committed delivers already-committed events to the after-commit handlers.
func (b *Bus) Committed(ctx context.Context, evs ...ReservationStateChanged) {
	b.mu.RLock()
	handlers := append([]namedHandler(nil), b.afterCommit...)
	b.mu.RUnlock()

	for _, ev := range evs {
		for _, h := range handlers {
			if err := h.fn(ctx, ev); err != nil {
				logger.Error("after-commit handler failed",
					"handler", h.name,
					"event_id", ev.EventID,
					"reservation_id", ev.ReservationID,
					"error", err,
				)
			}
		}
	}
}
