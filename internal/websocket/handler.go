package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. The optional initial
// payload is written before the feed starts so the client begins from the
// authoritative snapshot.
func ServeWs(hub *Hub, c *websocket.Conn, conversationID uuid.UUID, initial []byte) {
	client := &Client{Hub: hub, Conn: c, ConversationID: conversationID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	if initial != nil {
		client.Send <- initial
	}

	go client.writePump()
	client.readPump() // run readPump in the handler goroutine
}
