package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server upgrades HTTP requests and wires each connection to the hub.
type Server struct {
	hub        *Hub
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader
	buffer     int
}

// NewServer builds the websocket endpoint. A nil checkOrigin accepts any origin.
func NewServer(hub *Hub, dispatcher *Dispatcher, buffer int, checkOrigin func(origin string) bool) *Server {
	return &Server{
		hub:        hub,
		dispatcher: dispatcher,
		buffer:     buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if checkOrigin == nil || origin == "" {
					return true
				}
				return checkOrigin(origin)
			},
		},
	}
}

func (s *Server) Handle(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("[realtime] Upgrade failed: %s\n", err.Error())
		return
	}
	client := newClient(s.hub, conn, s.buffer)
	if !s.hub.join(client) {
		conn.Close()
		return
	}
	go client.writePump()
	go client.work(s.dispatcher.Handle)
	go client.readPump()
}
