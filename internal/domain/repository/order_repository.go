package repository

import (
	"context"
	"errors"
	"time"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines persistence operations for orders and their
// frozen line items.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByBuyerID returns the buyer's orders, newest first, with items.
	ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// ListByFarmerID returns orders containing at least one item for a
	// product posted by the given farmer, with items.
	ListByFarmerID(ctx context.Context, farmerID uuid.UUID) ([]*entity.Order, error)

	// List returns all orders, newest first, with items.
	List(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus persists a status change and, when deliveryDate is
	// non-nil, the delivery timestamp.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, deliveryDate *time.Time) error

	// Update persists changes to the order row.
	Update(ctx context.Context, order *entity.Order) error

	// DeleteItems removes all line items of an order.
	DeleteItems(ctx context.Context, orderID uuid.UUID) error

	// Delete removes the order row. Items must be deleted first.
	Delete(ctx context.Context, id uuid.UUID) error
}
