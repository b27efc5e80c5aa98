package repository

import (
	"context"
	"errors"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrCartNotFound is returned when a buyer has no cart yet.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart line is not found.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines persistence operations for shopping carts and
// their line items.
type CartRepository interface {
	// Create persists a new, empty cart.
	Create(ctx context.Context, cart *entity.Cart) error

	// FindByBuyerID retrieves the buyer's cart with its items, or a
	// not-found error if the buyer has no cart yet.
	FindByBuyerID(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error)

	// AddItem persists a new cart line.
	AddItem(ctx context.Context, item *entity.CartItem) error

	// UpdateItem persists changes to a cart line.
	UpdateItem(ctx context.Context, item *entity.CartItem) error

	// RemoveItem deletes a cart line.
	RemoveItem(ctx context.Context, itemID uuid.UUID) error

	// RemoveItemsByProductID deletes every cart line referencing the
	// product, returning the IDs of the carts that were touched so their
	// totals can be recomputed.
	RemoveItemsByProductID(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error)

	// ClearItems deletes all lines of a cart.
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// UpdateTotal persists a recomputed cart total.
	UpdateTotal(ctx context.Context, cartID uuid.UUID, total float64) error

	// FindByID retrieves a cart by its own ID with its items.
	FindByID(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error)

	// Delete removes the cart row. Items must be cleared first.
	Delete(ctx context.Context, cartID uuid.UUID) error
}
