// Package buffer accumulates rendered HTML fragments for templates.
//
// Three buffers share the same write contract (Appender):
//
//   - Frame is a single accumulation unit. Raw appends are escaped when the
//     frame is safe and the incoming text is not; safe appends are stored
//     verbatim.
//   - OutputBuffer is a non-empty stack of frames. All writes go to the top
//     frame. Push opens a nested capture region and Pop returns it, leaving
//     the enclosing frame untouched.
//   - StreamingBuffer keeps nothing. Each append is escaped if needed and
//     handed to a Sink immediately.
//
// # Nil Values
//
// Appending nil (or a typed nil pointer) is a no-op on every buffer.
// Templates evaluate to nil for empty branches all the time and that must
// never leak into the output.
//
// # Capture
//
//	buf := buffer.New()
//	buf.Append("hello")
//	buf.Push(nil)
//	buf.Append(" world")
//	inner, _ := buf.Pop()
//	buf.Append("!")
//
//	buf.String()   // "hello!"
//	inner.String() // " world"
//
// Capture wraps the push/pop pair and always restores the stack:
//
//	body, err := buf.Capture(func() error {
//	    return buf.Append(user.Name)
//	})
//
// # Escaping
//
// The escaper is injected with WithEscaper and defaults to
// safetext.HTMLEscape. Content that is already safe (safetext.Safe,
// html/template.HTML, another frame) is never escaped again.
//
// # Concurrency
//
// Buffers are owned by one render pass and are not safe for concurrent use.
package buffer
