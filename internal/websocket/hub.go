package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans the authoritative message snapshot of a conversation out to every
// subscribed client. One conversation can have several subscribers (multiple
// tabs), but a session releases its previous feed before opening the next.
type Hub struct {
	// Registered clients map: ConversationID -> list of clients
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb *redis.Client

	// Identifies this instance on the Redis channel so it can ignore its own
	// relayed snapshots.
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceId: uuid.New().String(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ConversationID] = append(h.clients[client.ConversationID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Feed subscribed", map[string]interface{}{"conversation_id": client.ConversationID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ConversationID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ConversationID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ConversationID]) == 0 {
					delete(h.clients, client.ConversationID)
					h.logger.Info("Hub", "Feed released", map[string]interface{}{"conversation_id": client.ConversationID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish delivers the full ordered snapshot for one conversation to every
// local subscriber and relays it to other instances via Redis.
func (h *Hub) Publish(snapshot dto.MessagesUpdated) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "messages",
		"data": snapshot,
	})

	h.mu.RLock()
	clients, localFound := h.clients[snapshot.ConversationId]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Run owns closing Send; queueing the unregister twice is
				// harmless, closing here would double-close.
				h.logger.Warn("Hub", "Client Send buffer full, dropping subscriber", map[string]interface{}{"conversation_id": snapshot.ConversationId})
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin_instance_id":     h.instanceId,
			"target_conversation_id": snapshot.ConversationId.String(),
			"message":                data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "conversation_events", jsonPayload)
	}
}

// subscribeToRedis forwards snapshots published by other instances to local
// subscribers of the targeted conversation.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "conversation_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		h.handleRelay([]byte(msg.Payload))
	}
}

// handleRelay delivers one relayed snapshot to local subscribers. Snapshots
// this instance published are skipped, local delivery already happened in
// Publish.
func (h *Hub) handleRelay(raw []byte) {
	var payload struct {
		OriginInstanceID     string          `json:"origin_instance_id"`
		TargetConversationID string          `json:"target_conversation_id"`
		Message              json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("Redis msg parse error: %v", err)
		return
	}

	if payload.OriginInstanceID == h.instanceId {
		return
	}

	cid, err := uuid.Parse(payload.TargetConversationID)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients, ok := h.clients[cid]
	h.mu.RUnlock()

	if ok {
		for _, client := range clients {
			select {
			case client.Send <- payload.Message:
			default:
				// Same as Publish: leave the close to Run.
				h.unregister <- client
			}
		}
	}
}
