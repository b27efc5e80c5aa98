package usecase

import (
	"context"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// --- Input DTOs ---

// CreateReviewInput defines the data required to review a product.
type CreateReviewInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

// UpdateReviewInput defines the updatable review fields.
type UpdateReviewInput struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewUsecase defines the interface for product review operations.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, buyerID uuid.UUID, input CreateReviewInput) (*entity.Review, error)
	UpdateReview(ctx context.Context, buyerID, reviewID uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)

	// DeleteReview removes a review. The author may delete their own;
	// an admin deleting someone else's is recorded as its moderator.
	DeleteReview(ctx context.Context, actorID, reviewID uuid.UUID) error

	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
