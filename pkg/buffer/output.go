package buffer

import (
	"fmt"
	"slices"

	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// OutputBuffer is a stack of frames with a current frame on top.
//
// The stack is never empty: the root frame is created with the buffer and
// cannot be popped. Everything written to the buffer goes to the current
// frame.
type OutputBuffer struct {
	stack   []*Frame
	current *Frame
	opts    options
}

// New returns a buffer with an empty root frame.
func New(opts ...Option) *OutputBuffer {
	o := newOptions(opts)
	return newBuffer(newFrame(o, safetext.Safe("")), o)
}

// NewFromString returns a buffer whose root frame holds seed verbatim.
func NewFromString(seed string, opts ...Option) *OutputBuffer {
	o := newOptions(opts)
	return newBuffer(newFrame(o, safetext.Safe(seed)), o)
}

// NewWithFrame returns a buffer that uses f as its root frame.
func NewWithFrame(f *Frame, opts ...Option) *OutputBuffer {
	o := newOptions(opts)
	if f == nil {
		f = newFrame(o, safetext.Safe(""))
	}
	return newBuffer(f, o)
}

// Inherit returns a single-frame buffer whose root is other's current frame.
// The frame is shared, not copied: writes through either buffer are visible
// to both until one of them pushes. other's nesting history is not carried
// over. A nil other behaves like New.
func Inherit(other *OutputBuffer, opts ...Option) *OutputBuffer {
	if other == nil {
		return New(opts...)
	}
	o := other.opts
	for _, opt := range opts {
		opt(&o)
	}
	return newBuffer(other.current, o)
}

func newBuffer(root *Frame, o options) *OutputBuffer {
	return &OutputBuffer{
		stack:   []*Frame{root},
		current: root,
		opts:    o,
	}
}

// Push makes f the current frame. A nil f pushes a new empty frame.
// It returns the frame that is now current.
func (b *OutputBuffer) Push(f *Frame) *Frame {
	if f == nil {
		f = newFrame(b.opts, safetext.Safe(""))
	}
	b.stack = append(b.stack, f)
	b.current = f
	b.opts.pushed(len(b.stack))
	return f
}

// Pop removes and returns the current frame. The root frame is never
// popped; trying returns an error matching ErrStackUnderflow and leaves the
// buffer unchanged.
func (b *OutputBuffer) Pop() (*Frame, error) {
	last := len(b.stack) - 1
	if last < 1 {
		return nil, underflow("pop called with only the root frame on the stack")
	}
	top := b.stack[last]
	b.stack[last] = nil
	b.stack = b.stack[:last]
	b.current = b.stack[last-1]
	b.opts.popped(len(b.stack), len(top.String()))
	return top, nil
}

// Capture runs fn inside a new frame and returns what it wrote. The stack is
// restored to its previous depth even when fn fails or leaves extra frames
// pushed. If fn pops the capture frame, frames above the previous depth are
// discarded and an error matching ErrCaptureLost is returned.
func (b *OutputBuffer) Capture(fn func() error) (safetext.Safe, error) {
	depth := len(b.stack)
	frame := b.Push(nil)

	err := fn()

	if len(b.stack) <= depth || b.stack[depth] != frame {
		got := len(b.stack)
		for len(b.stack) > depth {
			if _, popErr := b.Pop(); popErr != nil {
				break
			}
		}
		return "", captureLost(depth, got, err)
	}
	for len(b.stack) > depth+1 {
		if _, popErr := b.Pop(); popErr != nil {
			return "", popErr
		}
	}
	if _, popErr := b.Pop(); popErr != nil {
		return "", popErr
	}
	if err != nil {
		return "", err
	}
	return safetext.Escape(b.opts.escaper, frame.Text()), nil
}

// Replace adopts other's stack and current frame. Replacing a buffer with
// itself (or nil) does nothing. Frames become shared between both buffers;
// the stack slice is copied so later pushes do not interfere.
func (b *OutputBuffer) Replace(other *OutputBuffer) {
	if other == nil || other == b {
		return
	}
	b.stack = slices.Clone(other.stack)
	b.current = other.current
	b.opts = other.opts
}

// Current returns the frame writes are delegated to.
func (b *OutputBuffer) Current() *Frame {
	return b.current
}

// Depth returns the number of frames on the stack (at least 1).
func (b *OutputBuffer) Depth() int {
	return len(b.stack)
}

// The methods below forward to the current frame.

func (b *OutputBuffer) Append(v any) error {
	return b.current.Append(v)
}

func (b *OutputBuffer) SafeAppend(v any) error {
	return b.current.SafeAppend(v)
}

func (b *OutputBuffer) Write(p []byte) (int, error) {
	return b.current.Write(p)
}

func (b *OutputBuffer) WriteString(s string) (int, error) {
	return b.current.WriteString(s)
}

func (b *OutputBuffer) Len() int {
	return b.current.Len()
}

func (b *OutputBuffer) String() string {
	return b.current.String()
}

func (b *OutputBuffer) Text() safetext.Text {
	return b.current.Text()
}

func (b *OutputBuffer) IsSafe() bool {
	return b.current.IsSafe()
}

func (b *OutputBuffer) Present() bool {
	return b.current.Present()
}

func (b *OutputBuffer) Blank() bool {
	return b.current.Blank()
}

// Equal compares rendered content. other may be another buffer, a frame, a
// string, a safetext.Text or any fmt.Stringer. Stack depth is ignored.
func (b *OutputBuffer) Equal(other any) bool {
	switch o := other.(type) {
	case *OutputBuffer:
		return o != nil && b.String() == o.String()
	case *Frame:
		return o != nil && b.String() == o.String()
	case string:
		return b.String() == o
	case safetext.Text:
		return b.String() == safetext.Normalize(o).String()
	case fmt.Stringer:
		return !safetext.IsNil(o) && b.String() == o.String()
	default:
		return false
	}
}
