package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "treedoc"

var _ Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder exports metrics through a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    *prometheus.CounterVec
	treesCreated    prometheus.Counter
	randomServed    prometheus.Counter
}

// NewPrometheus creates a recorder with its own registry, including Go runtime
// and process collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()

	p := &PrometheusRecorder{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected bearer credentials by reason.",
		}, []string{"reason"}),
		treesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trees_created_total",
			Help:      "Trees accepted by the create operation.",
		}),
		randomServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "random_numbers_served_total",
			Help:      "Random numbers returned.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.requests,
		p.requestDuration,
		p.authFailures,
		p.treesCreated,
		p.randomServed,
	)

	return p
}

// Handler serves the registry in the Prometheus exposition format.
//
// GET /metrics
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (p *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return p.registry
}

// ObserveRequest records one served request.
func (p *PrometheusRecorder) ObserveRequest(route, method string, status int, duration time.Duration) {
	p.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// IncAuthFailure records a rejected credential.
func (p *PrometheusRecorder) IncAuthFailure(reason string) {
	p.authFailures.WithLabelValues(reason).Inc()
}

// IncTreeCreated records an accepted create request.
func (p *PrometheusRecorder) IncTreeCreated() {
	p.treesCreated.Inc()
}

// IncRandomServed records a returned random number.
func (p *PrometheusRecorder) IncRandomServed() {
	p.randomServed.Inc()
}
