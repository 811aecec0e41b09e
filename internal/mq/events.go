package mq

import (
	"context"
	"time"

	"github.com/XCypherusX/tbs-api/internal/events"
	"github.com/XCypherusX/tbs-api/internal/metrics"
)

const publishTimeout = 5 * time.Second

type JSONPublisher interface {
	PublishJSON(ctx context.Context, key, messageID string, v any) error
}

// EventForwarder is an after-commit subscriber that mirrors reservation state
// changes onto the broker.
type EventForwarder struct {
	pub JSONPublisher
}

func NewEventForwarder(pub JSONPublisher) *EventForwarder {
	return &EventForwarder{pub: pub}
}

func (f *EventForwarder) Handle(ctx context.Context, ev events.ReservationStateChanged) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := f.pub.PublishJSON(ctx, events.RoutingKeyReservationStateChanged, ev.EventID, ev); err != nil {
		metrics.RecordEventPublished("failed")
		return err
	}
	metrics.RecordEventPublished("success")
	return nil
}
