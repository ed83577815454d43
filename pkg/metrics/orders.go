package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the order creation flow (QR build included)
	OrderCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orders_create_latency_seconds",
		Help:    "Latency of order creation",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of orders created
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	// Orders moved to a terminal state, labeled by status
	OrdersClosed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_closed_total",
		Help: "Total number of orders closed, by terminal status",
	}, []string{"status"})

	// Orders force-expired by the sweeper
	OrdersExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_expired_total",
		Help: "Total number of orders expired by the sweeper",
	})

	// QR renders that fell back to the external image URL
	QRFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "promptpay_qr_fallback_total",
		Help: "Total number of QR renders that used the fallback URL",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderCreateLatency,
		OrdersCreated,
		OrdersClosed,
		OrdersExpired,
		QRFallbacks,
	)
}
