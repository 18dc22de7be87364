package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"siteview/internal/logging"
)

// SendBuffer is the per-client outbound queue length.
const SendBuffer = 256

// ErrBufferFull is returned when a client cannot accept another message.
var ErrBufferFull = errors.New("send buffer full")

// Client is one websocket connection.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	hub        *Hub
	mu         sync.Mutex
	registered chan struct{}
}

// Hub tracks clients and delivers broadcasts.
type Hub struct {
	logger  *slog.Logger
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a hub. Run must be started before clients register.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logging.NewComponentLogger(logger, "broadcast"),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, SendBuffer),
	}
}

// Run processes hub events until ctx is cancelled, then closes every client
// send channel.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			count := len(h.clients)
			h.mu.Unlock()
			close(c.registered)
			h.logger.Debug("client registered",
				logging.String(logging.FieldClientID, c.ID),
				logging.Int("clients", count))

		case c := <-h.unregister:
			h.remove(c, "client unregistered")

		case msg := <-h.broadcast:
			var full []*Client
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					full = append(full, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range full {
				h.remove(c, "client buffer full, dropping")
			}
		}
	}
}

func (h *Hub) remove(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c.ID]
	if ok {
		delete(h.clients, c.ID)
		close(c.Send)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Debug(reason, logging.String(logging.FieldClientID, c.ID))
	}
}

// NewClient wraps a websocket connection with a fresh client id.
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, SendBuffer),
		hub:  h,
	}
}

// Register adds a client. It returns once the client is visible to
// broadcasts, or when ctx ends.
func (h *Hub) Register(ctx context.Context, c *Client) error {
	c.registered = make(chan struct{})
	select {
	case h.register <- c:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.registered:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unregister removes a client and closes its send channel. Unknown clients
// are ignored.
func (h *Hub) Unregister(ctx context.Context, c *Client) {
	select {
	case h.unregister <- c:
	case <-ctx.Done():
	}
}

// Broadcast queues data for every client.
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- data
}

// BroadcastJSON marshals v and queues it for every client.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// SendJSON queues v for a single client without blocking.
func (h *Hub) SendJSON(c *Client, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.ID]; !ok {
		return errors.New("client not registered")
	}
	select {
	case c.Send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WriteMessage writes to the connection with proper locking.
func (c *Client) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}
