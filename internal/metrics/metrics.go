package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fieldfinder_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_bookings_total",
			Help: "Total number of pitch bookings",
		},
		[]string{"status"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fieldfinder_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	DiscountsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_discounts_applied_total",
			Help: "Total number of discount applications",
		},
		[]string{"scope", "type"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_payments_total",
			Help: "Total number of payments",
		},
		[]string{"method", "status"},
	)

	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"op"},
	)

	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_chat_requests_total",
			Help: "Total number of assistant chat requests by reply kind",
		},
		[]string{"kind"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldfinder_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fieldfinder_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordDiscountApplied(scope, discountType string) {
	DiscountsAppliedTotal.WithLabelValues(scope, discountType).Inc()
}

func RecordPayment(method, status string) {
	PaymentsTotal.WithLabelValues(method, status).Inc()
}

func RecordCartOperation(op string) {
	CartOperationsTotal.WithLabelValues(op).Inc()
}

func RecordChatRequest(kind string) {
	ChatRequestsTotal.WithLabelValues(kind).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
