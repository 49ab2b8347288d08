package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Event types and actions carried in the wire envelope
const (
	TypeOrderUpdate        = "order_update"
	TypeShoppingListUpdate = "shopping_list_update"

	ActionOrderUpdated        = "order_updated"
	ActionShoppingListUpdated = "shopping_list_updated"
)

// publishTimeout bounds how long a single publish may take; the caller
// is never blocked past this
const publishTimeout = 2 * time.Second

// Publisher delivers state-change events to real-time subscribers of a
// topic. Delivery is best-effort and at-most-once; failures are
// swallowed and never reach the triggering operation.
type Publisher interface {
	Publish(topic string, payload interface{})
}

// OrdersTopic names the per-family order event channel
func OrdersTopic(familyID uint) string {
	return fmt.Sprintf("orders_%d", familyID)
}

// ShoppingTopic names the per-family shopping list event channel
func ShoppingTopic(familyID uint) string {
	return fmt.Sprintf("shopping_%d", familyID)
}

// Envelope is the message format subscribers receive
type Envelope struct {
	Type    string                 `json:"type"`
	Message map[string]interface{} `json:"message"`
}

// OrderUpdated wraps a full order representation for fan-out
func OrderUpdated(order interface{}) Envelope {
	return Envelope{
		Type: TypeOrderUpdate,
		Message: map[string]interface{}{
			"action": ActionOrderUpdated,
			"order":  order,
		},
	}
}

// ShoppingListUpdated wraps a full shopping list item representation
// for fan-out
func ShoppingListUpdated(item interface{}) Envelope {
	return Envelope{
		Type: TypeShoppingListUpdate,
		Message: map[string]interface{}{
			"action": ActionShoppingListUpdated,
			"item":   item,
		},
	}
}

// ChooseTransport picks the publisher for the current runtime: a no-op
// under test execution, Redis when a broker is reachable so every
// instance's hub delivers, otherwise the local fallback (the hub itself)
func ChooseTransport(testing bool, client *redis.Client, local Publisher) Publisher {
	switch {
	case testing:
		return Nop{}
	case client != nil:
		return NewRedisPublisher(client)
	default:
		return local
	}
}

// Nop discards all events. Used under test and CI execution
type Nop struct{}

// Publish does nothing
func (Nop) Publish(string, interface{}) {}

// RedisPublisher fans events out over Redis pub/sub so every server
// instance's hub can deliver them to its own WebSocket subscribers
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher backed by the given Redis client
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends the payload to the topic's Redis channel without
// waiting for delivery. Transport errors are logged and dropped.
func (p *RedisPublisher) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal for %s failed: %v", topic, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.client.Publish(ctx, topic, data).Err(); err != nil {
			log.Printf("notify: publish to %s failed: %v", topic, err)
		}
	}()
}
