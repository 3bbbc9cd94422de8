package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements
// usecase.MetricsRecorder for the business counters; the HTTP vectors
// are fed by middleware.
type Metrics struct {
	// Business metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	InvoicesPaid     prometheus.Counter
	InvoiceAmount    prometheus.Histogram
	CyclesSeeded     prometheus.Counter
	ChargesSeeded    prometheus.Counter
	UsersRegistered  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "banco_transfers_created_total",
			Help: "Total number of transfers committed",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "banco_transfer_amount_cents",
			Help:    "Transfer amounts in centavos",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		InvoicesPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "banco_invoices_paid_total",
			Help: "Total number of card invoices paid",
		}),
		InvoiceAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "banco_invoice_amount_cents",
			Help:    "Paid invoice totals in centavos",
			Buckets: []float64{1000, 10000, 50000, 100000, 300000, 500000},
		}),
		CyclesSeeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "banco_card_cycles_seeded_total",
			Help: "Total number of billing cycles seeded",
		}),
		ChargesSeeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "banco_card_charges_seeded_total",
			Help: "Total number of charges generated across cycles",
		}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "banco_users_registered_total",
			Help: "Total number of registered users",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banco_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "banco_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banco_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}

// TransferCreated records a committed transfer.
func (m *Metrics) TransferCreated(amount int64) {
	m.TransfersCreated.Inc()
	m.TransferAmount.Observe(float64(amount))
}

// InvoicePaid records a paid invoice.
func (m *Metrics) InvoicePaid(amount int64) {
	m.InvoicesPaid.Inc()
	m.InvoiceAmount.Observe(float64(amount))
}

// CycleSeeded records a freshly seeded billing cycle.
func (m *Metrics) CycleSeeded(chargeCount int) {
	m.CyclesSeeded.Inc()
	m.ChargesSeeded.Add(float64(chargeCount))
}

// UserRegistered records a completed registration.
func (m *Metrics) UserRegistered() {
	m.UsersRegistered.Inc()
}
