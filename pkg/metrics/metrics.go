// Package metrics exposes Prometheus metrics for ghost encoding and the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssargent/ghostwriter/pkg/codec"
	"github.com/ssargent/ghostwriter/pkg/ghost"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry so
// several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Encode metrics
	encodesTotal      *prometheus.CounterVec
	encodeDuration    prometheus.Histogram
	channelRuns       *prometheus.HistogramVec
	inputSectionBytes prometheus.Histogram
	recordingFrames   prometheus.Histogram

	// Archive metrics
	archivedGhosts prometheus.Gauge

	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		encodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ghostwriter_encodes_total",
				Help: "Total number of ghost encodes by status and error kind",
			},
			[]string{"status", "kind"},
		),

		encodeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ghostwriter_encode_duration_seconds",
				Help:    "Ghost encode duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),

		channelRuns: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ghostwriter_channel_runs",
				Help:    "Number of run-length entries per channel in encoded ghosts",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"channel"},
		),

		inputSectionBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ghostwriter_input_section_bytes",
				Help:    "Used bytes of the input section in encoded ghosts",
				Buckets: prometheus.LinearBuckets(0, float64(codec.InputSectionCapacity)/10, 11),
			},
		),

		recordingFrames: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ghostwriter_recording_frames",
				Help:    "Number of frames in encoded recordings",
				Buckets: prometheus.ExponentialBuckets(60, 2, 10),
			},
		),

		archivedGhosts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ghostwriter_archived_ghosts",
				Help: "Number of ghosts in the archive",
			},
		),

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ghostwriter_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ghostwriter_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ghostwriter_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
	}
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordEncode records the outcome of one encode. g may be nil when err is set.
func (m *Metrics) RecordEncode(g *codec.Ghost, err error, duration time.Duration) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.encodesTotal.WithLabelValues(status, ghost.Kind(err)).Inc()
	m.encodeDuration.Observe(duration.Seconds())

	if err != nil || g == nil {
		return
	}
	m.channelRuns.WithLabelValues("buttons").Observe(float64(len(g.Inputs.Buttons)))
	m.channelRuns.WithLabelValues("direction").Observe(float64(len(g.Inputs.Direction)))
	m.channelRuns.WithLabelValues("trick").Observe(float64(len(g.Inputs.Trick)))
	m.inputSectionBytes.Observe(float64(g.Inputs.Size()))
	m.recordingFrames.Observe(float64(g.Frames))
}

// SetArchivedGhosts updates the archive size gauge.
func (m *Metrics) SetArchivedGhosts(n int) {
	m.archivedGhosts.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// WriteTextfile writes the current metrics to path in the node exporter
// textfile format, for one-shot CLI runs that are never scraped.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
