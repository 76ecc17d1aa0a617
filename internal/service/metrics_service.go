package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the scheduling
// pipeline and the HTTP surface.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheLatency prometheus.Observer
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter

	providerDuration prometheus.Observer
	providerFailures prometheus.Counter

	candidatesEvaluated prometheus.Histogram
	slotsReturned       prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "availability_cache_latency_seconds",
		Help:    "Latency for availability cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_hits_total",
		Help: "Total availability cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_misses_total",
		Help: "Total availability cache misses",
	})

	providerDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "calendar_provider_call_seconds",
		Help:    "Duration of calendar provider calls",
		Buckets: prometheus.DefBuckets,
	})

	providerFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_provider_failures_total",
		Help: "Total failed calendar provider calls",
	})

	candidatesEvaluated := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "slot_candidates_evaluated",
		Help:    "Candidate start times evaluated per slot search",
		Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
	})

	slotsReturned := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "slots_returned",
		Help:    "Ranked slots returned per slot search",
		Buckets: []float64{0, 1, 2, 5, 10, 25},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheHits, cacheMisses,
		providerDuration, providerFailures, candidatesEvaluated, slotsReturned, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		cacheLatency:        cacheLatency,
		cacheHits:           cacheHits,
		cacheMisses:         cacheMisses,
		providerDuration:    providerDuration,
		providerFailures:    providerFailures,
		candidatesEvaluated: candidatesEvaluated,
		slotsReturned:       slotsReturned,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordCacheOperation records an availability cache lookup.
func (s *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	s.cacheLatency.Observe(duration.Seconds())
	if hit {
		s.cacheHits.Inc()
		return
	}
	s.cacheMisses.Inc()
}

// ObserveProviderCall records one calendar provider round trip.
func (s *MetricsService) ObserveProviderCall(duration time.Duration, failed bool) {
	s.providerDuration.Observe(duration.Seconds())
	if failed {
		s.providerFailures.Inc()
	}
}

// ObserveSlotSearch records the volume of one slot search.
func (s *MetricsService) ObserveSlotSearch(candidates, slots int) {
	s.candidatesEvaluated.Observe(float64(candidates))
	s.slotsReturned.Observe(float64(slots))
}
