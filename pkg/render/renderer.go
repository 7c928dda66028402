package render

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	vberrors "github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/buffer"
	"github.com/vango-dev/viewbuf/pkg/safetext"
	"github.com/vango-dev/viewbuf/pkg/view"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// DefaultLang is the html lang attribute used when a page sets none.
	// Defaults to "en".
	DefaultLang string

	// Escaper escapes unsafe text. Defaults to safetext.HTMLEscape.
	Escaper safetext.Escaper

	// AttrEscaper escapes unsafe attribute values in page tags. Defaults to
	// safetext.AttrEscape.
	AttrEscaper safetext.Escaper

	// Observer receives buffer events from every render pass.
	Observer buffer.Observer

	// Logger receives render failures. Defaults to slog.Default().
	Logger *slog.Logger

	// Tracer is passed to each view.Context. nil uses the global provider.
	Tracer trace.Tracer

	// AutoFlush makes StreamingRenderer flush after every fragment instead
	// of only at section boundaries.
	AutoFlush bool
}

// Renderer runs templates into buffers. A Renderer holds no per-pass
// state and may be shared between goroutines; each pass gets its own
// view.Context.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.DefaultLang == "" {
		config.DefaultLang = "en"
	}
	if config.Escaper == nil {
		config.Escaper = safetext.HTMLEscape
	}
	if config.AttrEscaper == nil {
		config.AttrEscaper = safetext.AttrEscape
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Renderer{config: config}
}

// Config returns the effective configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// Elements returns tag helpers that use the configured escapers.
func (r *Renderer) Elements() Elements {
	return Elements{Content: r.config.Escaper, Attr: r.config.AttrEscaper}
}

// NewContext returns a fresh view.Context for one render pass.
func (r *Renderer) NewContext() *view.Context {
	opts := []view.Option{
		view.WithEscaper(r.config.Escaper),
		view.WithLogger(r.config.Logger),
		view.WithTracer(r.config.Tracer),
	}
	if r.config.Observer != nil {
		opts = append(opts, view.WithBufferOptions(buffer.WithObserver(r.config.Observer)))
	}
	return view.NewContext(opts...)
}

// RenderToString renders tpl into a new buffer and returns its content.
func (r *Renderer) RenderToString(ctx context.Context, tpl view.Template) (string, error) {
	vc := r.NewContext()
	if err := r.run(ctx, vc, tpl); err != nil {
		return "", err
	}
	return vc.OutputBuffer().String(), nil
}

// RenderWithLayout captures body into the default region and then renders
// layout, which is expected to yield it.
func (r *Renderer) RenderWithLayout(ctx context.Context, layout, body view.Template) (string, error) {
	vc := r.NewContext()
	content, err := vc.Capture(ctx, func(ctx context.Context) error {
		return r.run(ctx, vc, body)
	})
	if err != nil {
		return "", err
	}
	vc.Flow().Set(view.DefaultRegion, content)
	if err := r.run(ctx, vc, layout); err != nil {
		return "", err
	}
	return vc.OutputBuffer().String(), nil
}

// RenderPage renders a complete document into memory and writes it to w
// in one piece. Nothing is written if a template fails.
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page PageData) error {
	vc := r.NewContext()
	if err := r.renderDocument(ctx, vc, page, func() {}); err != nil {
		return err
	}
	_, err := io.WriteString(w, vc.OutputBuffer().String())
	return err
}

// StreamPage renders a complete document straight into s. Fragments reach
// the sink as they are produced; a failure leaves earlier fragments sent.
func (r *Renderer) StreamPage(ctx context.Context, s buffer.Sink, page PageData) error {
	vc := r.NewContext()
	vc.StreamTo(vc.NewStreaming(s))
	return r.renderDocument(ctx, vc, page, func() {})
}

// run executes tpl, wrapping foreign errors as template failures. Errors
// that already carry a code pass through unchanged.
func (r *Renderer) run(ctx context.Context, vc *view.Context, tpl view.Template) error {
	if tpl == nil {
		return nil
	}
	start := time.Now()
	err := tpl(ctx, vc)
	if err == nil {
		return nil
	}
	r.config.Logger.Error("template failed", "error", err, "elapsed", time.Since(start))
	return vberrors.FromError(err, vberrors.CodeTemplateFailed)
}
