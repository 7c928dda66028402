package buffer

import "github.com/vango-dev/viewbuf/pkg/safetext"

// Observer receives buffer events. Implementations must be cheap; they run
// inline with every push, pop and streamed fragment.
type Observer interface {
	// FramePushed is called after a push with the new stack depth.
	FramePushed(depth int)

	// FramePopped is called after a pop with the remaining depth and the
	// size of the popped frame in bytes.
	FramePopped(depth int, size int)

	// Streamed is called after the sink accepted a fragment.
	Streamed(bytes int, escaped bool)
}

// Option configures a buffer.
type Option func(*options)

type options struct {
	escaper  safetext.Escaper
	observer Observer
}

// WithEscaper sets the escaper applied to unsafe text.
// Defaults to safetext.HTMLEscape.
func WithEscaper(e safetext.Escaper) Option {
	return func(o *options) {
		if e != nil {
			o.escaper = e
		}
	}
}

// WithObserver registers an Observer for buffer events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func newOptions(opts []Option) options {
	o := options{escaper: safetext.HTMLEscape}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) pushed(depth int) {
	if o.observer != nil {
		o.observer.FramePushed(depth)
	}
}

func (o options) popped(depth, size int) {
	if o.observer != nil {
		o.observer.FramePopped(depth, size)
	}
}

func (o options) streamed(n int, escaped bool) {
	if o.observer != nil {
		o.observer.Streamed(n, escaped)
	}
}
