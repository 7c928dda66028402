package view

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/viewbuf/pkg/buffer"
	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// TracerName is the OpenTelemetry tracer used when none is configured.
const TracerName = "viewbuf"

// Template renders into a Context.
type Template func(ctx context.Context, vc *Context) error

// Context is the state of one render pass. It is not safe for concurrent
// use; parallel passes each need their own Context.
type Context struct {
	flow    *Flow
	out     buffer.Appender
	escaper safetext.Escaper
	bufOpts []buffer.Option
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for capture spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Context) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithEscaper sets the escaper for buffers created by the Context and for
// its Flow.
func WithEscaper(e safetext.Escaper) Option {
	return func(c *Context) {
		if e != nil {
			c.escaper = e
		}
	}
}

// WithBufferOptions passes options to every buffer the Context creates.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(c *Context) {
		c.bufOpts = append(c.bufOpts, opts...)
	}
}

// NewContext returns a Context with an empty Flow and no output installed.
// The first write installs an OutputBuffer.
func NewContext(opts ...Option) *Context {
	c := &Context{
		escaper: safetext.HTMLEscape,
		logger:  slog.Default(),
		tracer:  otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bufOpts = append(c.bufOpts, buffer.WithEscaper(c.escaper))
	c.flow = NewFlow(c.escaper)
	return c
}

// Escaper returns the escaper shared by the Context's buffers and Flow.
func (c *Context) Escaper() safetext.Escaper {
	return c.escaper
}

// Flow returns the named region store.
func (c *Context) Flow() *Flow {
	return c.flow
}

// Output returns the current output target.
func (c *Context) Output() buffer.Appender {
	if c.out == nil {
		c.out = buffer.New(c.bufOpts...)
	}
	return c.out
}

// OutputBuffer returns the installed OutputBuffer, or nil while streaming.
func (c *Context) OutputBuffer() *buffer.OutputBuffer {
	b, _ := c.Output().(*buffer.OutputBuffer)
	return b
}

// SetOutputBuffer points the Context at b. When an OutputBuffer is already
// installed it adopts b's state through Replace, so anything holding the old
// buffer sees the new content.
func (c *Context) SetOutputBuffer(b *buffer.OutputBuffer) {
	if b == nil {
		return
	}
	if cur, ok := c.out.(*buffer.OutputBuffer); ok && cur != nil {
		cur.Replace(b)
		return
	}
	c.out = b
}

// StreamTo makes s the output target.
func (c *Context) StreamTo(s *buffer.StreamingBuffer) {
	c.out = s
}

// NewBuffer returns an OutputBuffer configured like the Context's own.
func (c *Context) NewBuffer() *buffer.OutputBuffer {
	return buffer.New(c.bufOpts...)
}

// NewStreaming returns a StreamingBuffer configured like the Context's own
// buffers.
func (c *Context) NewStreaming(sink buffer.Sink) *buffer.StreamingBuffer {
	return buffer.NewStreaming(sink, c.bufOpts...)
}

// Append writes v to the output as raw text.
func (c *Context) Append(v any) error {
	return c.Output().Append(v)
}

// SafeAppend writes v to the output verbatim.
func (c *Context) SafeAppend(v any) error {
	return c.Output().SafeAppend(v)
}

// Capture runs fn in an isolated region and returns what it wrote. On an
// OutputBuffer this is a push/pop; while streaming, fn renders into a
// transient OutputBuffer and the stream is left untouched.
func (c *Context) Capture(ctx context.Context, fn func(ctx context.Context) error) (safetext.Safe, error) {
	ctx, span := c.tracer.Start(ctx, "viewbuf.capture")
	defer span.End()

	var (
		out safetext.Safe
		err error
	)
	if b, ok := c.Output().(*buffer.OutputBuffer); ok {
		span.SetAttributes(attribute.Int("viewbuf.depth", b.Depth()))
		out, err = b.Capture(func() error { return fn(ctx) })
	} else {
		span.SetAttributes(attribute.Bool("viewbuf.streaming", true))
		out, err = c.captureTransient(ctx, fn)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("viewbuf.length", len(out)))
	c.logger.Debug("captured region", "length", len(out))
	return out, nil
}

func (c *Context) captureTransient(ctx context.Context, fn func(ctx context.Context) error) (safetext.Safe, error) {
	prev := c.out
	tmp := c.NewBuffer()
	c.out = tmp
	defer func() { c.out = prev }()

	if err := fn(ctx); err != nil {
		return "", err
	}
	return safetext.Escape(c.escaper, tmp.Text()), nil
}

// ContentFor captures fn and appends the result to the named region.
func (c *Context) ContentFor(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	content, err := c.Capture(ctx, fn)
	if err != nil {
		return err
	}
	c.flow.Append(name, content)
	c.logger.Debug("content for region", "region", name, "length", len(content))
	return nil
}

// LayoutFor returns the named region for a layout to yield. An empty name
// means DefaultRegion.
func (c *Context) LayoutFor(name string) safetext.Safe {
	if name == "" {
		name = DefaultRegion
	}
	return c.flow.Get(name)
}

// Yield writes the named region to the output.
func (c *Context) Yield(name string) error {
	return c.SafeAppend(c.LayoutFor(name))
}
