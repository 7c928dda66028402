// Package sink adapts output destinations to buffer.Sink.
//
//   - Writer forwards fragments to an io.Writer and flushes it when it is an
//     http.Flusher.
//   - WebSocket sends each fragment as one text message.
//   - S3 collects fragments and uploads them as a single object on Commit.
//
// Each adapter exposes a Sink method value:
//
//	w := sink.NewWriter(rw, sink.WithAutoFlush(true))
//	stream := buffer.NewStreaming(w.Sink)
package sink
