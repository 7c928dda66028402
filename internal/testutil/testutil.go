// Package testutil provides testing utilities for viewbuf tests.
package testutil

import "io"

// FlushableWriter wraps an io.Writer and counts Flush calls, standing in for
// an http.ResponseWriter when testing streaming output.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
