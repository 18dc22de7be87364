package broadcast

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"siteview/internal/logging"
)

// Connection timing.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// MessageHandler receives inbound client messages.
type MessageHandler func(c *Client, data []byte)

// Serve upgrades the request and runs the client's pumps until the
// connection closes. onConnect runs after registration, before reads start.
func (h *Hub) Serve(ctx context.Context, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, onConnect func(*Client), onMessage MessageHandler) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := h.NewClient(conn)
	if err := h.Register(ctx, c); err != nil {
		conn.Close()
		return err
	}
	if onConnect != nil {
		onConnect(c)
	}
	go c.writePump()
	c.readPump(ctx, onMessage)
	return nil
}

func (c *Client) readPump(ctx context.Context, onMessage MessageHandler) {
	defer func() {
		c.hub.Unregister(ctx, c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read failed",
					logging.String(logging.FieldClientID, c.ID),
					logging.Error(err))
			}
			return
		}
		if onMessage != nil {
			onMessage(c, message)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
