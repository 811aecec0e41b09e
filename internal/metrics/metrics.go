package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation outcomes.
const (
	ResultCreated  = "created"
	ResultConflict = "conflict"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbs_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tbs_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbs_reservations_total",
			Help: "Reservation create attempts by result",
		},
		[]string{"result"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tbs_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	WishlistAvailabilityFlipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbs_wishlist_availability_flips_total",
			Help: "Wishlist entries whose availability changed, by source",
		},
		[]string{"source"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbs_events_published_total",
			Help: "Reservation state events handed to the broker",
		},
		[]string{"status"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbs_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tbs_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(result string) {
	ReservationsTotal.WithLabelValues(result).Inc()
}

func RecordCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordWishlistFlips(source string, n int64) {
	if n <= 0 {
		return
	}
	WishlistAvailabilityFlipsTotal.WithLabelValues(source).Add(float64(n))
}

func RecordEventPublished(status string) {
	EventsPublishedTotal.WithLabelValues(status).Inc()
}

func RecordNotification(notificationType, status string) {
	NotificationsSentTotal.WithLabelValues(notificationType, status).Inc()
}
