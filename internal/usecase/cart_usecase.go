package usecase

import (
	"context"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// CartUsecase defines the interface for shopping cart operations. Every
// method is buyer-only; other roles get a business-rule error.
type CartUsecase interface {
	// GetCart returns the buyer's cart, creating an empty one on first access.
	GetCart(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error)

	// AddItem adds a product to the cart, or increments the existing line.
	AddItem(ctx context.Context, buyerID, productID uuid.UUID, quantity int) (*entity.Cart, error)

	// SetItemQuantity replaces a line's quantity. Zero or negative removes the line.
	SetItemQuantity(ctx context.Context, buyerID, itemID uuid.UUID, quantity int) (*entity.Cart, error)

	// RemoveItem deletes a line from the cart.
	RemoveItem(ctx context.Context, buyerID, itemID uuid.UUID) (*entity.Cart, error)

	// ClearCart removes every line.
	ClearCart(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error)
}
