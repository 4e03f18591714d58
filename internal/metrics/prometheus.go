package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exposes Recorder events as Prometheus metrics.
// It owns a private registry so multiple instances can coexist in tests.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	feedbackCreated prometheus.Counter
	feedbackVoted   *prometheus.CounterVec
	feedbackDeleted prometheus.Counter
	storeFailures   *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
}

// NewPrometheus creates a PrometheusRecorder with metrics under namespace.
func NewPrometheus(namespace string) *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	r := &PrometheusRecorder{
		registry: registry,
		feedbackCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_created_total",
			Help:      "Total number of feedback entries created",
		}),
		feedbackVoted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_votes_total",
			Help:      "Total number of votes cast, by direction",
		}, []string{"direction"}),
		feedbackDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_deleted_total",
			Help:      "Total number of feedback entries deleted",
		}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Store operations that failed and were masked from the client",
		}, []string{"op"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Duration of store load and save operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}

	registry.MustRegister(
		r.feedbackCreated,
		r.feedbackVoted,
		r.feedbackDeleted,
		r.storeFailures,
		r.storeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler returns an http.Handler serving the exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *PrometheusRecorder) IncFeedbackCreated() {
	r.feedbackCreated.Inc()
}

func (r *PrometheusRecorder) IncFeedbackVoted(direction string) {
	r.feedbackVoted.WithLabelValues(direction).Inc()
}

func (r *PrometheusRecorder) IncFeedbackDeleted() {
	r.feedbackDeleted.Inc()
}

func (r *PrometheusRecorder) IncStoreFailure(op string) {
	r.storeFailures.WithLabelValues(op).Inc()
}

func (r *PrometheusRecorder) ObserveStoreDuration(op string, duration time.Duration) {
	r.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
}
