package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's prometheus registry and instruments.
type Collector struct {
	registry              *prometheus.Registry
	httpRequests          *prometheus.CounterVec
	requestDuration       prometheus.Histogram
	transactionsProcessed prometheus.Counter
	transactionsFailed    prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		httpRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		}, []string{"method", "path", "code"}),
		requestDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to serve an HTTP request",
			Buckets: prometheus.DefBuckets,
		}),
		transactionsProcessed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transactions_processed_total",
			Help: "Total number of successfully recorded transactions",
		}),
		transactionsFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transactions_failed_total",
			Help: "Total number of rejected transactions",
		}),
	}
}

func (c *Collector) RecordRequest(method, path string, code int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordTransaction(success bool) {
	if success {
		c.transactionsProcessed.Inc()
	} else {
		c.transactionsFailed.Inc()
	}
}

// Handler serves the registry in prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
