package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clavis/rdx"
)

// Channel carries order lifecycle events for live admin refresh.
const Channel = "order-events"

// OrderEvent is one order lifecycle notification.
type OrderEvent struct {
	EventType string    `json:"event_type"` // created, updated, deleted
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	At        time.Time `json:"at"`
}

// Emit publishes an order event to Redis. Best effort: a failed
// publish is logged and dropped, never surfaced to the caller.
func Emit(ctx context.Context, eventType, orderID, userID string) {
	event := OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		UserID:    userID,
		At:        time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event: %v", err)
	}
}
