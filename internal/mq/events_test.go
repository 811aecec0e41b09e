package mq

import (
	"context"
	"errors"
	"testing"

	"github.com/XCypherusX/tbs-api/internal/events"
	"github.com/XCypherusX/tbs-api/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key, messageID string, v any) error {
	return m.Called(ctx, key, messageID, v).Error(0)
}

func TestEventForwarder_Handle(t *testing.T) {
	metrics.EventsPublishedTotal.Reset()
	pub := new(MockPublisher)
	fwd := NewEventForwarder(pub)
	ev := events.NewReservationStateChanged(1, 2, 3, 4, false)

	pub.On("PublishJSON", mock.Anything, "reservation.state_changed", ev.EventID, ev).Return(nil)

	require.NoError(t, fwd.Handle(context.Background(), ev))
	pub.AssertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues("success")))
}

func TestEventForwarder_HandleFailure(t *testing.T) {
	metrics.EventsPublishedTotal.Reset()
	pub := new(MockPublisher)
	fwd := NewEventForwarder(pub)

	pub.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	err := fwd.Handle(context.Background(), events.NewReservationStateChanged(1, 2, 3, 4, true))
	assert.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues("failed")))
}

func TestEventForwarder_ViaBus(t *testing.T) {
	pub := new(MockPublisher)
	bus := events.NewBus()
	bus.SubscribeAfterCommit("broker", NewEventForwarder(pub).Handle)

	pub.On("PublishJSON", mock.Anything, events.RoutingKeyReservationStateChanged, mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()
	pub.On("PublishJSON", mock.Anything, events.RoutingKeyReservationStateChanged, mock.Anything, mock.Anything).
		Return(nil).Once()

	// failures are logged and do not stop the remaining events
	bus.Committed(context.Background(),
		events.NewReservationStateChanged(1, 2, 3, 4, true),
		events.NewReservationStateChanged(5, 2, 3, 6, true),
	)
	pub.AssertNumberOfCalls(t, "PublishJSON", 2)
}
