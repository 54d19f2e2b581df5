package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// socket timings
const (
	writeTimeout     = 10 * time.Second
	idleTimeout      = 60 * time.Second
	keepaliveEvery   = idleTimeout * 9 / 10
	inboundFrameSize = 4 << 10
)

// Client is one open notification socket of a user
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64
	logger zerolog.Logger
}

func (c *Client) remoteAddr() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

func (c *Client) extendIdle() error {
	return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
}

// readPump drains inbound frames so control frames get handled.
// The socket is push-only; anything the browser sends is dropped.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(inboundFrameSize)
	_ = c.extendIdle()
	c.conn.SetPongHandler(func(string) error { return c.extendIdle() })

	for {
		_, _, err := c.conn.ReadMessage()
		if err == nil {
			continue
		}
		event := c.logger.Debug()
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			event = c.logger.Warn()
		}
		event.Err(err).Int64("userID", c.userID).Str("addr", c.remoteAddr()).Msg("Notification socket closed")
		return
	}
}

// write sends one frame within writeTimeout
func (c *Client) write(messageType int, payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, payload)
}

// writePump delivers each notification as its own text frame and keeps the
// connection alive with pings. It exits when the hub closes send.
func (c *Client) writePump() {
	keepalive := time.NewTicker(keepaliveEvery)
	defer func() {
		keepalive.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, open := <-c.send:
			if !open {
				_ = c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(websocket.TextMessage, payload); err != nil {
				c.logger.Debug().Err(err).Int64("userID", c.userID).Msg("Notification write failed")
				return
			}
		case <-keepalive.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
