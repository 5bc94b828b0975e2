// Package realtime serves the websocket fan-out: per-connection snapshot
// queries and hub-wide broadcasts.
package realtime

import (
	"context"
	"sync/atomic"
	"travelhub/src/lib"
)

// Hub owns the set of connected clients. All mutations happen on the
// goroutine running Run.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stopped    chan struct{}
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    map[*Client]struct{}{},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			lib.AddRealtimeConnections(1)
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.enqueue(msg) {
					h.remove(c)
				}
			}
		case <-ctx.Done():
			for c := range h.clients {
				c.close()
				h.remove(c)
			}
			return
		}
	}
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.close()
	h.count.Add(-1)
	lib.AddRealtimeConnections(-1)
}

// Broadcast queues payload for every connected client as-is.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.stopped:
	}
}

// Count reports the number of registered clients.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// ForwardPayload adapts the hub to external message sources.
func (h *Hub) ForwardPayload(payload string) {
	h.Broadcast([]byte(payload))
}
