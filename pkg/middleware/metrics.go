package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	vberrors "github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/buffer"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "viewbuf").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "viewbuf",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for rendering. It implements
// buffer.Observer, so it can be handed to buffers directly, and Handler
// wraps HTTP handlers to time requests.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	renderErrors    *prometheus.CounterVec
	framesPushed    prometheus.Counter
	frameDepth      prometheus.Histogram
	captureBytes    prometheus.Histogram
	streamedBytes   *prometheus.CounterVec
}

var _ buffer.Observer = (*Metrics)(nil)

// NewMetrics registers the collectors with the configured registry.
// Registering twice with the same registry panics, as with promauto.
//
// Metrics collected:
//   - viewbuf_requests_total: Counter of requests by route and status code
//   - viewbuf_request_duration_seconds: Histogram of request duration by route
//   - viewbuf_render_errors_total: Counter of render errors by error code
//   - viewbuf_frames_pushed_total: Counter of frames pushed onto buffers
//   - viewbuf_frame_depth: Histogram of stack depth after each push
//   - viewbuf_capture_bytes: Histogram of popped frame sizes in bytes
//   - viewbuf_streamed_bytes_total: Counter of bytes sent to sinks, by escaped
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of render requests",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Render request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of render errors",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		framesPushed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_pushed_total",
			Help:        "Total number of frames pushed onto output buffers",
			ConstLabels: config.ConstLabels,
		}),

		frameDepth: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frame_depth",
			Help:        "Buffer stack depth after a push",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{2, 3, 4, 6, 8, 12, 16},
		}),

		captureBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "capture_bytes",
			Help:        "Size of popped frames in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(64, 4, 8), // 64 to 1MB
		}),

		streamedBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "streamed_bytes_total",
			Help:        "Total bytes sent to streaming sinks",
			ConstLabels: config.ConstLabels,
		}, []string{"escaped"}),
	}
}

// FramePushed implements buffer.Observer.
func (m *Metrics) FramePushed(depth int) {
	m.framesPushed.Inc()
	m.frameDepth.Observe(float64(depth))
}

// FramePopped implements buffer.Observer.
func (m *Metrics) FramePopped(depth, size int) {
	m.captureBytes.Observe(float64(size))
}

// Streamed implements buffer.Observer.
func (m *Metrics) Streamed(n int, escaped bool) {
	m.streamedBytes.WithLabelValues(strconv.FormatBool(escaped)).Add(float64(n))
}

// RecordError counts a render error under its error code.
func (m *Metrics) RecordError(err error) {
	if err == nil {
		return
	}
	m.renderErrors.WithLabelValues(categorizeError(err)).Inc()
}

// Handler times requests and counts them by route pattern and status.
// The route comes from chi once routing has happened, which keeps label
// cardinality bounded by the number of routes.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.Status())).Inc()
	})
}

// categorizeError maps an error to a low-cardinality label.
func categorizeError(err error) string {
	var e *vberrors.Error
	switch {
	case stderrors.Is(err, context.Canceled):
		return "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case stderrors.As(err, &e) && e.Code != "":
		return e.Code
	default:
		return "internal"
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
