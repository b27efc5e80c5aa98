package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a buyer's in-progress selection of products. Exactly one cart
// exists per buyer; it is created lazily on first access.
// Invariant: TotalAmount always equals the sum of the item subtotals.
type Cart struct {
	ID          uuid.UUID
	BuyerID     uuid.UUID
	TotalAmount float64
	CreatedAt   time.Time
	Items       []*CartItem
}

// CartItem is one line of a cart. Its subtotal tracks the product's
// current price at the time of the last mutation; it is deliberately not
// a price snapshot.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Subtotal  float64
}

// RecalculateTotal recomputes the cart total from its item subtotals.
// Callers persist the cart in the same transaction as the item mutation.
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal
	}
	c.TotalAmount = total
}

// FindItem returns the cart line with the given ID, or nil.
func (c *Cart) FindItem(itemID uuid.UUID) *CartItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}

	return nil
}

// FindItemByProduct returns the cart line referencing the given product, or nil.
func (c *Cart) FindItemByProduct(productID uuid.UUID) *CartItem {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item
		}
	}

	return nil
}

// RemoveItem drops the line with the given ID from the in-memory item list.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	c.Items = items
}
