package main

import (
	"bytes"
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/middleware"
	"github.com/vango-dev/viewbuf/pkg/render"
	"github.com/vango-dev/viewbuf/pkg/sink"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages over HTTP",
		Long: `Serve the demo pages.

Routes:
  /, /{page}          streamed, flushed after head and body
  /buffered/{page}    rendered in memory, sent in one piece
  /ws/{page}          streamed as websocket text messages
  /metrics            Prometheus metrics (when enabled)

Examples:
  viewbuf serve
  viewbuf serve --addr=:3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-ctx.Done():
		a.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown error", "error", err)
			return err
		}
		a.logger.Info("server shutdown complete")
		return nil
	}
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	if a.cfg.Tracing.Enabled {
		r.Use(middleware.OpenTelemetry(middleware.WithTracerName(a.cfg.Tracing.TracerName)))
	}
	if a.metrics != nil {
		r.Use(a.metrics.Handler)
		r.Handle(a.cfg.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		a.servePage(w, r, "index")
	})
	r.Get("/{page}", func(w http.ResponseWriter, r *http.Request) {
		a.servePage(w, r, chi.URLParam(r, "page"))
	})
	r.Get("/buffered/{page}", func(w http.ResponseWriter, r *http.Request) {
		a.serveBuffered(w, r, chi.URLParam(r, "page"))
	})
	r.Get("/ws/{page}", func(w http.ResponseWriter, r *http.Request) {
		a.serveWebSocket(w, r, &upgrader, chi.URLParam(r, "page"))
	})

	return r
}

// servePage streams the page. Once the head is sent the status is fixed,
// so later failures are only logged.
func (a *app) servePage(w http.ResponseWriter, r *http.Request, name string) {
	page, err := a.site.Page(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", sink.DefaultContentType)
	sr := render.NewStreamingRenderer(w, a.renderer.Config())
	if err := sr.RenderPage(r.Context(), page); err != nil {
		a.recordError("stream failed", err, "page", name, "written", sr.Written())
	}
}

func (a *app) serveBuffered(w http.ResponseWriter, r *http.Request, name string) {
	page, err := a.site.Page(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := a.renderer.RenderPage(r.Context(), &buf, page); err != nil {
		a.recordError("render failed", err, "page", name)
		http.Error(w, errors.FromError(err, errors.CodeTemplateFailed).FormatCompact(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", sink.DefaultContentType)
	_, _ = buf.WriteTo(w)
}

func (a *app) serveWebSocket(w http.ResponseWriter, r *http.Request, upgrader *websocket.Upgrader, name string) {
	page, err := a.site.Page(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ws := sink.NewWebSocket(conn, a.cfg.Stream.WebSocketWriteTimeout)
	defer ws.Close()

	if err := a.renderer.StreamPage(r.Context(), ws.Sink, page); err != nil {
		a.recordError("websocket stream failed", err, "page", name, "messages", ws.Messages())
		return
	}
	a.logger.Debug("websocket stream done", "page", name, "messages", ws.Messages())
}
