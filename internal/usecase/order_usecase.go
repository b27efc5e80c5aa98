package usecase

import (
	"context"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// --- Input DTOs ---

// OrderLineInput is one requested line of a new order.
type OrderLineInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	Items           []OrderLineInput `json:"items"`
	DeliveryMethod  string           `json:"delivery_method"`
	DeliveryAddress string           `json:"delivery_address,omitempty"`
	DeliveryNotes   string           `json:"delivery_notes,omitempty"`
	PaymentMethod   string           `json:"payment_method"`
}

// OrderUsecase defines the interface for order placement and lifecycle
// management.
type OrderUsecase interface {
	// PlaceOrder reserves stock for every line, freezes prices, creates
	// the order and its ledger record in one transaction.
	PlaceOrder(ctx context.Context, buyerID uuid.UUID, input PlaceOrderInput) (*entity.Order, error)

	// CancelOrder cancels a pending order and restores its stock.
	CancelOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*entity.Order, error)

	// UpdateStatus moves an order to a new status. Admins may update any
	// order; farmers only orders containing their products.
	UpdateStatus(ctx context.Context, actorID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// GetOrder returns an order visible to the actor: its buyer, an
	// admin, or a farmer with a product in it.
	GetOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error)

	ListMyOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)
	ListFarmerOrders(ctx context.Context, farmerID uuid.UUID) ([]*entity.Order, error)

	// PickupQR renders the PNG QR code a buyer presents when collecting
	// a pickup order.
	PickupQR(ctx context.Context, buyerID, orderID uuid.UUID) ([]byte, error)
}
