package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to post a new listing.
type CreateProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
	Available   *bool   `json:"available,omitempty"`
}

// UpdateProductInput defines the updatable listing fields. Nil pointers
// leave the current value untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

// ListProductsInput defines the catalog browse filters.
type ListProductsInput struct {
	Keyword       string
	Category      string
	Status        string
	MinPrice      *float64
	MaxPrice      *float64
	Location      string
	AvailableOnly bool
}

// CatalogUsecase defines the interface for product listing management
// and catalog browsing.
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, farmerID uuid.UUID, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, farmerID, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a listing and everything referencing it:
	// reviews, then cart lines (affected cart totals are recomputed),
	// then the product, in one transaction.
	DeleteProduct(ctx context.Context, farmerID, productID uuid.UUID) error

	// UploadProductImage stores the image and records its URL on the listing.
	UploadProductImage(ctx context.Context, farmerID, productID uuid.UUID, contentType string, content io.Reader) (*entity.Product, error)

	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]*entity.Product, error)
	ListFarmerProducts(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error)
}
