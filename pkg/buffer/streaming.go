package buffer

import (
	vberrors "github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// Sink consumes streamed fragments in order. A returned error aborts the
// current append and is propagated to the caller.
type Sink func(text string) error

// StreamingBuffer escapes each append as needed and forwards it to a Sink.
// It retains nothing, so it cannot capture; use a transient OutputBuffer for
// nested regions and stream the result once it resolves.
type StreamingBuffer struct {
	sink Sink
	opts options
}

// NewStreaming returns a StreamingBuffer that writes to sink.
// A nil sink discards everything.
func NewStreaming(sink Sink, opts ...Option) *StreamingBuffer {
	if sink == nil {
		sink = func(string) error { return nil }
	}
	return &StreamingBuffer{sink: sink, opts: newOptions(opts)}
}

// Append escapes v unless it is already safe and sends it to the sink.
// nil is ignored and the sink is not called.
func (s *StreamingBuffer) Append(v any) error {
	if safetext.IsNil(v) {
		return nil
	}
	t, err := coerce(v)
	if err != nil {
		return err
	}
	return s.emit(safetext.Escape(s.opts.escaper, t).String(), !t.IsSafe())
}

// SafeAppend sends v to the sink verbatim. nil is ignored.
func (s *StreamingBuffer) SafeAppend(v any) error {
	if safetext.IsNil(v) {
		return nil
	}
	t, err := coerce(v)
	if err != nil {
		return err
	}
	return s.emit(t.String(), false)
}

// Write streams p as raw text.
func (s *StreamingBuffer) Write(p []byte) (int, error) {
	if err := s.emit(s.opts.escaper(string(p)).String(), true); err != nil {
		return 0, err
	}
	return len(p), nil
}

// IsSafe is always true: whatever left the buffer has been escaped.
func (s *StreamingBuffer) IsSafe() bool {
	return true
}

func (s *StreamingBuffer) emit(text string, escaped bool) error {
	if err := s.sink(text); err != nil {
		return vberrors.New(vberrors.CodeSinkFailure).Wrap(err)
	}
	s.opts.streamed(len(text), escaped)
	return nil
}
