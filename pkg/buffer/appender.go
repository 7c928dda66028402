package buffer

import "github.com/vango-dev/viewbuf/pkg/safetext"

// Appender is the write contract shared by every buffer.
type Appender interface {
	// Append writes v as raw text, escaping it if needed.
	Append(v any) error

	// SafeAppend writes v verbatim; the caller has already escaped it.
	SafeAppend(v any) error

	// IsSafe reports whether the accumulated output is safe to emit.
	IsSafe() bool
}

// TextSink is an Appender that retains what was written.
// Frame and OutputBuffer implement it; OutputBuffer forwards every method to
// its current frame.
type TextSink interface {
	Appender
	Len() int
	String() string
	Text() safetext.Text
	Present() bool
	Blank() bool
}

var (
	_ TextSink = (*Frame)(nil)
	_ TextSink = (*OutputBuffer)(nil)
	_ Appender = (*StreamingBuffer)(nil)
)
