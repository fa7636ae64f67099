// Package live pushes record change events to open table views so other
// sessions can refresh without polling.
package live

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event describes one confirmed mutation of a record table.
type Event struct {
	Action string `json:"action"` // created, updated, deleted, reordered, imported
	Table  string `json:"table"`
	ID     int64  `json:"id,omitempty"`
}

// conn is the slice of *websocket.Conn the hub needs. The websocket library
// forbids concurrent writers on one connection, so every write goes through
// the subscriber's own lock.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type subscriber struct {
	table   string
	writeMu sync.Mutex
}

// Hub fans events out to every connection subscribed to the event's table.
type Hub struct {
	mu     sync.RWMutex
	conns  map[conn]*subscriber
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[conn]*subscriber),
		logger: logger,
	}
}

func (h *Hub) subscribe(c conn, tableName string) {
	h.mu.Lock()
	h.conns[c] = &subscriber{table: tableName}
	h.mu.Unlock()
}

func (h *Hub) unsubscribe(c conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// Publish sends the event to every subscriber of its table. Concurrent
// publishes are serialized per connection, and broken connections are
// dropped rather than failing the caller.
func (h *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make(map[conn]*subscriber, len(h.conns))
	for c, sub := range h.conns {
		if sub.table == event.Table {
			targets[c] = sub
		}
	}
	h.mu.RUnlock()

	for c, sub := range targets {
		sub.writeMu.Lock()
		err := c.WriteMessage(websocket.TextMessage, payload)
		sub.writeMu.Unlock()
		if err != nil {
			h.unsubscribe(c)
			c.Close()
		}
	}

	h.logger.Debug("event published",
		zap.String("table", event.Table),
		zap.String("action", event.Action))
}

// Handle keeps one subscriber connection open until the peer goes away.
func (h *Hub) Handle(c *websocket.Conn) {
	tableName := c.Params("table")
	h.subscribe(c, tableName)
	defer func() {
		h.unsubscribe(c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
