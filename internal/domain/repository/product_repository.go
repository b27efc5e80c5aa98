package repository

import (
	"context"
	"errors"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows catalog queries. Zero-value fields are ignored.
type ProductFilter struct {
	Category string
	Status   entity.ProductStatus
	// Keyword matches against product name, case-insensitively.
	Keyword string
	// MinPrice and MaxPrice bound the unit price when non-nil.
	MinPrice *float64
	MaxPrice *float64
	// Location matches against the posting farmer's profile location.
	Location string
	// AvailableOnly restricts results to products marked available.
	AvailableOnly bool
}

// ProductRepository defines persistence operations for catalog listings.
type ProductRepository interface {
	// Create persists a new product listing.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByFarmerID returns all products posted by the given farmer.
	FindByFarmerID(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error)

	// List returns products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Update persists changes to a product listing.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock atomically reduces stock by quantity, only if enough
	// stock remains. It reports whether the decrement was applied.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)

	// IncrementStock restores stock, for example when an order is cancelled.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// Delete removes a product listing.
	Delete(ctx context.Context, id uuid.UUID) error
}
