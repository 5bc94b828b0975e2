package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	frameBacklog   = 4
)

// Client is one websocket connection. The read loop, the frame worker and
// the write pump run on separate goroutines; everything sent to the peer goes
// through send. Frames are handled one at a time, in arrival order.
type Client struct {
	ID     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	frames chan []byte
	done   chan struct{}
	once   sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, buffer int) *Client {
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		ID:     uuid.NewString(),
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, buffer),
		frames: make(chan []byte, frameBacklog),
		done:   make(chan struct{}),
	}
}

// enqueue reports false when the client is gone or its buffer is full; a
// full buffer closes the client.
func (c *Client) enqueue(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	default:
		log.Printf("[realtime] Dropping slow client [%s]\n", c.ID)
		c.close()
		return false
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// accept queues a frame for the worker. Frames arriving while the backlog is
// full are dropped.
func (c *Client) accept(raw []byte) bool {
	select {
	case c.frames <- raw:
		return true
	default:
		log.Printf("[realtime] Dropping frame from busy client [%s]\n", c.ID)
		return false
	}
}

func (c *Client) work(handle func(raw []byte) []byte) {
	for {
		select {
		case <-c.done:
			return
		case raw := <-c.frames:
			reply := handle(raw)
			if reply == nil || c.closed() {
				continue
			}
			c.enqueue(reply)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.close()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[realtime] Read error for client [%s]: %s\n", c.ID, err.Error())
			}
			return
		}
		c.accept(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return
		}
	}
}
