package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus describes the stocking state of a product listing.
type ProductStatus string

const (
	// ProductInStock marks a product as currently stocked.
	ProductInStock ProductStatus = "IN_STOCK"
	// ProductOutOfStock marks a product as sold out.
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
	// ProductSeasonal marks a product as out of season.
	ProductSeasonal ProductStatus = "SEASONAL"
)

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductInStock, ProductOutOfStock, ProductSeasonal:
		return true
	default:
		return false
	}
}

// Product is a catalog listing owned by a farmer. It is referenced by
// cart items, order items and reviews strictly by ID.
type Product struct {
	ID          uuid.UUID
	FarmerID    uuid.UUID
	Name        string
	Category    string
	Description string
	Price       float64 // Current unit price; order items snapshot it at placement.
	Unit        string  // Unit label, e.g. "kg" or "bunch".
	Quantity    int     // Remaining stock; adjusted by order placement and cancellation.
	ImageURL    string  // Opaque reference returned by the file store.
	Status      ProductStatus
	Available   bool // Derived from Status unless explicitly overridden.
	PostedAt    time.Time
}

// ResolveAvailability computes the status/available pair the way every
// persist must: an explicit available flag wins, otherwise the flag is
// derived from the status, and a missing status is derived from the flag.
// This keeps the two fields from silently diverging.
func ResolveAvailability(status ProductStatus, available *bool) (ProductStatus, bool) {
	if status == "" {
		if available != nil && !*available {
			status = ProductOutOfStock
		} else {
			status = ProductInStock
		}
	}
	if available != nil {
		return status, *available
	}

	return status, status == ProductInStock
}
