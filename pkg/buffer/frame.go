package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// Frame is one level of buffered output.
//
// A Frame created with NewFrame is safe: raw appends are escaped before they
// are stored. A Frame seeded with unsafe text stays unsafe and stores raw
// appends as-is until a SafeAppend marks it safe.
type Frame struct {
	buf    strings.Builder
	safe   bool
	escape safetext.Escaper
}

// NewFrame returns an empty, safe frame.
func NewFrame(opts ...Option) *Frame {
	return newFrame(newOptions(opts), safetext.Safe(""))
}

// NewFrameFrom returns a frame seeded with t. The frame takes t's safety.
func NewFrameFrom(t safetext.Text, opts ...Option) *Frame {
	if t == nil {
		t = safetext.Safe("")
	}
	return newFrame(newOptions(opts), t)
}

func newFrame(o options, seed safetext.Text) *Frame {
	f := &Frame{safe: seed.IsSafe(), escape: o.escaper}
	f.buf.WriteString(seed.String())
	return f
}

// Append writes v as raw text. nil is ignored. When the frame is safe and v
// is not, v is escaped first.
func (f *Frame) Append(v any) error {
	if safetext.IsNil(v) {
		return nil
	}
	t, err := coerce(v)
	if err != nil {
		return err
	}
	f.appendText(t)
	return nil
}

// SafeAppend writes v verbatim and marks the frame safe. nil is ignored.
func (f *Frame) SafeAppend(v any) error {
	if safetext.IsNil(v) {
		return nil
	}
	t, err := coerce(v)
	if err != nil {
		return err
	}
	f.buf.WriteString(t.String())
	f.safe = true
	return nil
}

func (f *Frame) appendText(t safetext.Text) {
	t = safetext.Normalize(t)
	if t.IsSafe() || !f.safe {
		f.buf.WriteString(t.String())
		return
	}
	f.buf.WriteString(string(safetext.Escape(f.escape, t)))
}

// Write appends p as raw text so a Frame can be used with fmt.Fprintf.
func (f *Frame) Write(p []byte) (int, error) {
	f.appendText(safetext.Unsafe(p))
	return len(p), nil
}

// WriteString is Write for strings.
func (f *Frame) WriteString(s string) (int, error) {
	f.appendText(safetext.Unsafe(s))
	return len(s), nil
}

// Len returns the content length in characters.
func (f *Frame) Len() int {
	return utf8.RuneCountInString(f.buf.String())
}

func (f *Frame) String() string {
	return f.buf.String()
}

// Text returns the content with its safety tag.
func (f *Frame) Text() safetext.Text {
	if f.safe {
		return safetext.Safe(f.buf.String())
	}
	return safetext.Unsafe(f.buf.String())
}

func (f *Frame) IsSafe() bool {
	return f.safe
}

// Present reports whether the frame holds anything besides whitespace.
func (f *Frame) Present() bool {
	return strings.TrimSpace(f.buf.String()) != ""
}

// Blank is the negation of Present.
func (f *Frame) Blank() bool {
	return !f.Present()
}
