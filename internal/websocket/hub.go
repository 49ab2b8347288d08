package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// message is a payload queued for delivery to one topic's subscribers
type message struct {
	topic string
	data  []byte
}

// Hub maintains per-topic subscriber sets and fans messages out to them.
// Topics are the per-family channels orders_{id} and shopping_{id}.
type Hub struct {
	mu sync.Mutex

	// Subscribers keyed by topic, then by connection ID
	topics map[string]map[uuid.UUID]*websocket.Conn

	// Messages to be delivered to subscribers
	broadcast chan message

	// Upgrader for HTTP connections to WebSocket
	upgrader websocket.Upgrader
}

// NewHub creates a new hub for managing WebSocket connections
func NewHub() *Hub {
	upgrader := websocket.Upgrader{
		// Allow all origins for WebSocket connections
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	return &Hub{
		topics:    make(map[string]map[uuid.UUID]*websocket.Conn),
		broadcast: make(chan message, 256),
		upgrader:  upgrader,
	}
}

// Run starts delivering queued messages to topic subscribers
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.deliver(msg)
	}
}

func (h *Hub) deliver(msg message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.topics[msg.topic] {
		if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
			log.Printf("ws: dropping subscriber on %s: %v", msg.topic, err)
			conn.Close()
			delete(h.topics[msg.topic], id)
		}
	}
}

// Publish queues a payload for the topic's local subscribers. It never
// blocks; when the queue is full the message is dropped. This makes the
// hub usable directly as a notification publisher when no broker is
// configured.
func (h *Hub) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws: marshal for %s failed: %v", topic, err)
		return
	}

	select {
	case h.broadcast <- message{topic: topic, data: data}:
	default:
		log.Printf("ws: queue full, dropped message on %s", topic)
	}
}

// RunRedisBridge forwards events published to the orders_* and
// shopping_* Redis channels into the local subscriber sets, so every
// server instance delivers to its own connections
func (h *Hub) RunRedisBridge(ctx context.Context, client *redis.Client) {
	sub := client.PSubscribe(ctx, "orders_*", "shopping_*")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			select {
			case h.broadcast <- message{topic: msg.Channel, data: []byte(msg.Payload)}:
			default:
				log.Printf("ws: queue full, dropped bridged message on %s", msg.Channel)
			}
		}
	}
}

// Subscribe upgrades an HTTP connection to WebSocket and registers it
// on the given topic until the peer disconnects
func (h *Hub) Subscribe(topic string, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	id := uuid.New()
	h.mu.Lock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[uuid.UUID]*websocket.Conn)
	}
	h.topics[topic][id] = conn
	h.mu.Unlock()

	// Read messages from the client to detect disconnect; inbound
	// content is ignored
	go func() {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.topics[topic], id)
				h.mu.Unlock()
				break
			}
		}
	}()
}

// SubscriberCount reports how many connections are registered on a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
