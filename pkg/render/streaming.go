package render

import (
	"context"
	"io"

	"github.com/vango-dev/viewbuf/pkg/sink"
)

// StreamingRenderer wraps Renderer with chunked output support.
// Fragments go straight to the writer and the response is flushed after the
// head, after the body and at the end of the document.
type StreamingRenderer struct {
	*Renderer
	w       io.Writer
	written int64
}

// NewStreamingRenderer creates a streaming renderer that writes to w.
// If w implements http.Flusher, content is flushed after each section for
// faster time to first byte.
func NewStreamingRenderer(w io.Writer, config RendererConfig) *StreamingRenderer {
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		w:        w,
	}
}

// Written returns the number of bytes streamed so far.
func (s *StreamingRenderer) Written() int64 {
	return s.written
}

// RenderPage streams a complete HTML document. Output already sent stays
// sent when a template fails part way through.
func (s *StreamingRenderer) RenderPage(ctx context.Context, page PageData) error {
	out := sink.NewWriter(s.w, sink.WithContext(ctx), sink.WithAutoFlush(s.config.AutoFlush))
	defer func() { s.written += out.Written() }()

	vc := s.NewContext()
	vc.StreamTo(vc.NewStreaming(out.Sink))
	return s.renderDocument(ctx, vc, page, out.Flush)
}
