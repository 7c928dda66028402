// Package middleware provides observability for rendering servers.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry starts a server span for each request. Capture spans
// opened by view.Context during rendering nest under it.
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// Metrics is both an HTTP middleware and a buffer.Observer:
//
//	m := middleware.NewMetrics()
//	r.Use(m.Handler)
//	renderer := render.NewRenderer(render.RendererConfig{Observer: m})
//	r.Handle("/metrics", promhttp.Handler())
//
// Request metrics are labeled by chi route pattern, never by raw path.
package middleware
