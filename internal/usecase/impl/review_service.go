package impl

import (
	"context"
	"log/slog"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateReview records a buyer's rating of a product and refreshes the
// selling farmer's aggregate rating.
func (srv *reviewService) CreateReview(ctx context.Context, buyerID uuid.UUID, input usecase.CreateReviewInput) (*entity.Review, error) {
	srv.logger.Info("Creating review", "buyerID", buyerID, "productID", input.ProductID)

	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	review := &entity.Review{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireBuyer(ctx, repoFactory, buyerID); err != nil {
			return err
		}

		product, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		return srv.refreshFarmerRating(ctx, repoFactory, product.FarmerID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	return review, nil
}

// UpdateReview applies the author's changes to a review.
func (srv *reviewService) UpdateReview(ctx context.Context, buyerID, reviewID uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	srv.logger.Info("Updating review", "buyerID", buyerID, "reviewID", reviewID)

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review not found")
			}

			return errors.Wrap(err, "failed to find review")
		}
		if found.BuyerID != buyerID {
			return errors.Wrap(domainerrors.ErrNotReviewAuthor, "review written by another buyer")
		}

		if input.Rating != nil {
			found.Rating = *input.Rating
		}
		if input.Comment != nil {
			found.Comment = *input.Comment
		}

		if err := reviewRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		review = found

		product, err := repoFactory.ProductRepo().FindByID(ctx, found.ProductID)
		if err != nil {
			// The product may already be gone; the rating refresh is moot then.
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find product")
		}

		return srv.refreshFarmerRating(ctx, repoFactory, product.FarmerID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return review, nil
}

// DeleteReview removes a review. The author may delete their own; an
// admin deleting someone else's review is recorded as its moderator
// before the row goes away.
func (srv *reviewService) DeleteReview(ctx context.Context, actorID, reviewID uuid.UUID) error {
	srv.logger.Info("Deleting review", "actorID", actorID, "reviewID", reviewID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review not found")
			}

			return errors.Wrap(err, "failed to find review")
		}

		if found.BuyerID != actorID {
			actor, err := repoFactory.UserRepo().FindByID(ctx, actorID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.Wrap(domainerrors.ErrUserNotFound, "actor not found")
				}

				return errors.Wrap(err, "failed to find actor")
			}
			if actor.Role != entity.RoleAdmin {
				return errors.Wrap(domainerrors.ErrNotReviewAuthor, "review written by another buyer")
			}

			found.ModeratedByID = &actorID
			if err := reviewRepo.Update(ctx, found); err != nil {
				return errors.Wrap(err, "failed to record moderator")
			}
		}

		if err := reviewRepo.Delete(ctx, reviewID); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		product, err := repoFactory.ProductRepo().FindByID(ctx, found.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find product")
		}

		return srv.refreshFarmerRating(ctx, repoFactory, product.FarmerID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

// ListProductReviews returns all reviews of a product, newest first.
func (srv *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().ListByProductID(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		reviews = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product reviews")
	}

	return reviews, nil
}

// refreshFarmerRating recomputes the farmer's aggregate rating as the
// mean of the ratings across all their products.
func (srv *reviewService) refreshFarmerRating(ctx context.Context, repoFactory repository.RepositoryFactory, farmerID uuid.UUID) error {
	products, err := repoFactory.ProductRepo().FindByFarmerID(ctx, farmerID)
	if err != nil {
		return errors.Wrap(err, "failed to list farmer products")
	}

	var (
		sum   float64
		count int
	)
	reviewRepo := repoFactory.ReviewRepo()
	for _, product := range products {
		reviews, err := reviewRepo.ListByProductID(ctx, product.ID)
		if err != nil {
			return errors.Wrap(err, "failed to list product reviews")
		}
		for _, review := range reviews {
			sum += float64(review.Rating)
			count++
		}
	}

	userRepo := repoFactory.UserRepo()
	farmer, err := userRepo.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find farmer")
	}
	if farmer.FarmerProfile == nil {
		return nil
	}

	if count == 0 {
		farmer.FarmerProfile.Rating = 0
	} else {
		farmer.FarmerProfile.Rating = sum / float64(count)
	}

	if err := userRepo.Update(ctx, farmer); err != nil {
		return errors.Wrap(err, "failed to update farmer rating")
	}

	return nil
}
