package service

import (
	"context"
	"time"
)

// OrderEvent is published whenever an order is placed, cancelled, or
// moves to a new status, for async consumers such as notification workers.
type OrderEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	BuyerID     string    `json:"buyer_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
