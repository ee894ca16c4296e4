package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records request latency plus the registry's dataset and
// dispatch counters.
type APIMetrics struct {
	requests      *prometheus.HistogramVec
	recordsLoaded prometheus.Gauge
	dispatched    *prometheus.CounterVec
}

// NewAPIMetrics registers the API metrics on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
	recordsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "license_records_loaded",
		Help: "Number of license records currently held in the store.",
	})
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Simulated notification dispatches by message kind.",
	}, []string{"kind"})
	reg.MustRegister(requests, recordsLoaded, dispatched)
	return &APIMetrics{
		requests:      requests,
		recordsLoaded: recordsLoaded,
		dispatched:    dispatched,
	}
}

// ObserveRequest records one served request.
func (m *APIMetrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(route), method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// SetRecordsLoaded tracks the store size after a load or replace.
func (m *APIMetrics) SetRecordsLoaded(n int) {
	if m == nil || m.recordsLoaded == nil {
		return
	}
	m.recordsLoaded.Set(float64(n))
}

// IncDispatched counts one simulated dispatch for the given kind.
func (m *APIMetrics) IncDispatched(kind string) {
	if m == nil || m.dispatched == nil {
		return
	}
	m.dispatched.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
