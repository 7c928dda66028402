package sink

import (
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket sends each fragment as a text message on a websocket connection.
// Empty fragments are skipped.
type WebSocket struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	messages     int
}

// NewWebSocket wraps conn. A positive writeTimeout sets a write deadline
// before every message.
func NewWebSocket(conn *websocket.Conn, writeTimeout time.Duration) *WebSocket {
	return &WebSocket{conn: conn, writeTimeout: writeTimeout}
}

// Sink sends text as one message.
func (s *WebSocket) Sink(text string) error {
	if text == "" {
		return nil
	}
	if s.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return err
		}
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return err
	}
	s.messages++
	return nil
}

// Messages returns the number of messages sent.
func (s *WebSocket) Messages() int {
	return s.messages
}

// Close sends a normal closure frame. The connection itself is left for the
// caller to close.
func (s *WebSocket) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	deadline := time.Now().Add(time.Second)
	if s.writeTimeout > 0 {
		deadline = time.Now().Add(s.writeTimeout)
	}
	return s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
}
