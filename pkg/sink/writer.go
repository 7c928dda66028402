package sink

import (
	"context"
	"io"
	"net/http"
)

// Writer writes fragments to an io.Writer.
type Writer struct {
	w         io.Writer
	flusher   http.Flusher
	ctx       context.Context
	autoFlush bool
	written   int64
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithAutoFlush flushes after every fragment when the writer supports it.
func WithAutoFlush(enabled bool) WriterOption {
	return func(s *Writer) {
		s.autoFlush = enabled
	}
}

// WithContext makes the sink fail with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) WriterOption {
	return func(s *Writer) {
		s.ctx = ctx
	}
}

// NewWriter creates a Writer. If w implements http.Flusher, Flush and
// auto-flush push buffered bytes to the client.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	flusher, _ := w.(http.Flusher)
	s := &Writer{w: w, flusher: flusher, ctx: context.Background()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sink writes text and is meant to be passed to buffer.NewStreaming.
func (s *Writer) Sink(text string) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	n, err := io.WriteString(s.w, text)
	s.written += int64(n)
	if err != nil {
		return err
	}
	if s.autoFlush {
		s.Flush()
	}
	return nil
}

// Flush flushes the writer if it supports flushing.
func (s *Writer) Flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// Written returns the number of bytes written so far.
func (s *Writer) Written() int64 {
	return s.written
}
