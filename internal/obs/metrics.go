package obs

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Status transitions attempted, by entity, action and outcome.",
		},
		[]string{"entity", "action", "outcome"},
	)

	bulkItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_bulk_items_total",
			Help: "Items processed by bulk operations.",
		},
		[]string{"action", "outcome"},
	)

	outboxEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_total",
			Help: "Outbox events handled by the publisher.",
		},
		[]string{"result"},
	)

	statsCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_lookups_total",
			Help: "Dashboard stats cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Init registers every collector in the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			transitionsTotal,
			bulkItemsTotal,
			outboxEventsTotal,
			statsCacheTotal,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func HTTPStarted() {
	httpInFlight.Inc()
}

func HTTPFinished(method, path, status string, started time.Time) {
	httpInFlight.Dec()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(started).Seconds())
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func RecordTransition(entity, action string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	transitionsTotal.WithLabelValues(entity, action, outcome).Inc()
}

func RecordBulk(action string, succeeded, failed int) {
	bulkItemsTotal.WithLabelValues(action, OutcomeSuccess).Add(float64(succeeded))
	bulkItemsTotal.WithLabelValues(action, OutcomeFailure).Add(float64(failed))
}

func RecordOutbox(result string) {
	outboxEventsTotal.WithLabelValues(result).Inc()
}

func RecordStatsCache(result string) {
	statsCacheTotal.WithLabelValues(result).Inc()
}
