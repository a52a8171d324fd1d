package metrics

import (
	"net/http"
	"time"

	"storefront-checkout/internal/domain/checkout"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Registry owns every collector of the service so tests can use a fresh one.
type Registry struct {
	reg *prometheus.Registry
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{reg: reg}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(r *Registry) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})

	r.reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// CheckoutMetrics records checkout outcomes and reservation churn.
type CheckoutMetrics struct {
	succeeded       *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	rejected        *prometheus.CounterVec
	released        *prometheus.CounterVec
	reconcileFailed prometheus.Counter
}

func NewCheckoutMetrics(r *Registry) *CheckoutMetrics {
	m := &CheckoutMetrics{
		succeeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "sessions_created_total",
			Help:      "Checkout sessions created, by mode.",
		}, []string{"mode"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "duration_seconds",
			Help:      "Time from request to created session.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "rejected_total",
			Help:      "Checkouts rejected before a session was created, by reason.",
		}, []string{"reason"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "reservations_released_total",
			Help:      "Reservation rows returned to stock, by reason.",
		}, []string{"reason"}),
		reconcileFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "reconcile_failures_total",
			Help:      "Reservations left under their temporary key after session creation.",
		}),
	}
	r.reg.MustRegister(m.succeeded, m.duration, m.rejected, m.released, m.reconcileFailed)
	return m
}

func (m *CheckoutMetrics) CheckoutSucceeded(mode checkout.Mode, d time.Duration) {
	m.succeeded.WithLabelValues(mode.String()).Inc()
	m.duration.WithLabelValues(mode.String()).Observe(d.Seconds())
}

func (m *CheckoutMetrics) CheckoutRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *CheckoutMetrics) ReservationsReleased(reason string, count int64) {
	if count <= 0 {
		return
	}
	m.released.WithLabelValues(reason).Add(float64(count))
}

func (m *CheckoutMetrics) ReconcileFailed() {
	m.reconcileFailed.Inc()
}
