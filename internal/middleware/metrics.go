package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "schouw"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"method", "route"})

	requestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_progress",
		Help:      "HTTP requests currently being served.",
	})

	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Inspections produced, by source (ai or fallback).",
	}, []string{"source"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_uploads_total",
		Help:      "Photo upload requests by result.",
	}, []string{"result"})

	uploadedPhotos = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_stored_total",
		Help:      "Photos written to the object store.",
	})

	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_renders_total",
		Help:      "Rendered reports by output format.",
	}, []string{"format"})
)

// RecordAnalysis counts a stored inspection by its source.
func RecordAnalysis(source string) { analysesTotal.WithLabelValues(source).Inc() }

// RecordUpload counts an upload request; stored is the number of photos written.
func RecordUpload(result string, stored int) {
	uploadsTotal.WithLabelValues(result).Inc()
	uploadedPhotos.Add(float64(stored))
}

func RecordRender(format string) { rendersTotal.WithLabelValues(format).Inc() }

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInProgress.Inc()
		defer requestsInProgress.Dec()
		start := time.Now()
		wrapped := wrapWriter(w)

		next.ServeHTTP(wrapped, r)

		// route pattern baru terisi setelah routing selesai
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler serves the prometheus exposition format.
func MetricsHandler() http.Handler { return promhttp.Handler() }
