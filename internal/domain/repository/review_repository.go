package repository

import (
	"context"
	"errors"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByID retrieves a review by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// ListByProductID returns all reviews of a product, newest first.
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// ListByBuyerID returns all reviews written by a buyer, newest first.
	ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Review, error)

	// AverageRatingByProductID returns the mean rating of a product, or
	// zero when it has no reviews.
	AverageRatingByProductID(ctx context.Context, productID uuid.UUID) (float64, error)

	// Update persists changes to a review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProductID removes all reviews of a product.
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error

	// DeleteByBuyerID removes all reviews written by a buyer.
	DeleteByBuyerID(ctx context.Context, buyerID uuid.UUID) error
}
