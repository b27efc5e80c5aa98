package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderPending is the initial state of every order.
	OrderPending OrderStatus = "PENDING"
	// OrderConfirmed means the seller acknowledged the order.
	OrderConfirmed OrderStatus = "CONFIRMED"
	// OrderProcessing means the order is being prepared.
	OrderProcessing OrderStatus = "PROCESSING"
	// OrderShipped means the order left the farm.
	OrderShipped OrderStatus = "SHIPPED"
	// OrderDelivered is the terminal success state; reaching it stamps the delivery date.
	OrderDelivered OrderStatus = "DELIVERED"
	// OrderCancelled is the terminal state reached only from PENDING.
	OrderCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// Order is a committed purchase. After creation only Status and
// DeliveryDate may change; the item lines and amounts are frozen.
type Order struct {
	ID              uuid.UUID
	BuyerID         uuid.UUID
	OrderDate       time.Time
	DeliveryMethod  string
	DeliveryAddress string
	DeliveryNotes   string
	TotalAmount     float64
	Status          OrderStatus
	DeliveryDate    *time.Time // Set once, when the order reaches DELIVERED.
	Items           []*OrderItem
}

// OrderItem is one frozen line of an order. PriceAtOrder is the product
// price snapshotted at placement and never changes afterwards, unlike a
// cart item's live subtotal.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	Quantity     int
	PriceAtOrder float64
	Subtotal     float64
}

// ContainsProductOf reports whether any order line references one of the
// given product IDs. Used for farmer-side authorization ("any line I sell").
func (o *Order) ContainsProductOf(productIDs map[uuid.UUID]struct{}) bool {
	for _, item := range o.Items {
		if _, ok := productIDs[item.ProductID]; ok {
			return true
		}
	}

	return false
}
