package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsWriter is the write-side of a gorilla connection.
type wsWriter interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// SafeConn serializes writes to one websocket connection. gorilla/websocket
// supports at most one concurrent writer, and a wall connection is written to
// from the ping loop, the connect handshake, and broadcasting request
// handlers.
type SafeConn struct {
	mu sync.Mutex
	ws wsWriter
}

var _ Conn = (*SafeConn)(nil)

func NewSafeConn(ws *websocket.Conn) *SafeConn {
	return &SafeConn{ws: ws}
}

// WriteJSON sends one JSON message under the connection's write deadline.
func (c *SafeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.ws.WriteJSON(v)
}

// Ping sends a websocket ping frame.
func (c *SafeConn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

func (c *SafeConn) Close() error {
	return c.ws.Close()
}
