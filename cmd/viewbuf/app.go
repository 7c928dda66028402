package main

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/viewbuf/internal/config"
	"github.com/vango-dev/viewbuf/internal/site"
	"github.com/vango-dev/viewbuf/pkg/middleware"
	"github.com/vango-dev/viewbuf/pkg/render"
)

// app carries what every command needs once config is loaded.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics
	renderer *render.Renderer
	site     *site.Site
}

func (a *app) init(cfg *config.Config) {
	a.cfg = cfg
	a.logger = cfg.NewLogger(a.stderr)
	a.site = site.Demo()

	rc := render.RendererConfig{
		DefaultLang: cfg.Render.DefaultLang,
		Escaper:     cfg.Escaper(),
		Logger:      a.logger,
		AutoFlush:   cfg.Stream.AutoFlush,
		Tracer:      noop.NewTracerProvider().Tracer(""),
	}
	if cfg.Tracing.Enabled {
		rc.Tracer = otel.Tracer(cfg.Tracing.TracerName)
	}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(a.registry),
		)
		rc.Observer = a.metrics
	}
	a.renderer = render.NewRenderer(rc)

	if f := cfg.File(); f != "" {
		a.logger.Debug("config loaded", "file", f)
	}
}

// recordError logs err and counts it when metrics are on.
func (a *app) recordError(msg string, err error, attrs ...any) {
	a.logger.Error(msg, append(attrs, "error", err)...)
	if a.metrics != nil {
		a.metrics.RecordError(err)
	}
}
