package postgres

import (
	"context"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain's ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown buyer or product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// FindByID retrieves a review by ID.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reviewM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&reviewM), nil
}

// ListByProductID returns all reviews of a product, newest first.
func (repo *reviewRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return repo.list(ctx, "product_id = ?", productID)
}

// ListByBuyerID returns all reviews written by a buyer, newest first.
func (repo *reviewRepository) ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Review, error) {
	return repo.list(ctx, "buyer_id = ?", buyerID)
}

func (repo *reviewRepository) list(ctx context.Context, query string, arg any) ([]*entity.Review, error) {
	var models []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for _, reviewM := range models {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

// AverageRatingByProductID returns the mean rating of a product, or zero
// when it has no reviews.
func (repo *reviewRepository) AverageRatingByProductID(ctx context.Context, productID uuid.UUID) (float64, error) {
	var avg *float64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to average product rating")
	}
	if avg == nil {
		return 0, nil
	}

	return *avg, nil
}

// Update persists changes to a review.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	if err := repo.db.WithContext(ctx).Save(fromReviewDomain(review)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update review")
	}

	return nil
}

// Delete removes a review.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// DeleteByProductID removes all reviews of a product.
func (repo *reviewRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ReviewModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete reviews by product")
	}

	return nil
}

// DeleteByBuyerID removes all reviews written by a buyer.
func (repo *reviewRepository) DeleteByBuyerID(ctx context.Context, buyerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Delete(&model.ReviewModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete reviews by buyer")
	}

	return nil
}

// --- Mapper Functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:            data.ID,
		BuyerID:       data.BuyerID,
		ProductID:     data.ProductID,
		Rating:        data.Rating,
		Comment:       data.Comment,
		ModeratedByID: data.ModeratedByID,
		CreatedAt:     data.CreatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:            data.ID,
		BuyerID:       data.BuyerID,
		ProductID:     data.ProductID,
		Rating:        data.Rating,
		Comment:       data.Comment,
		ModeratedByID: data.ModeratedByID,
		CreatedAt:     data.CreatedAt,
	}
}
