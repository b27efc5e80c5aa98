package impl

import (
	"context"
	"testing"

	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reviewServiceFixtures holds all test dependencies for review service tests.
type reviewServiceFixtures struct {
	service usecase.ReviewUsecase
	store   *memStore
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	t.Helper()

	store := newMemStore()
	service := NewReviewService(newMemTxManager(store), testLogger())

	return reviewServiceFixtures{service: service, store: store}
}

func TestReviewService_CreateReview_Success(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	product := seedProduct(fx.store, farmer.ID, 2.50, 10)

	review, err := fx.service.CreateReview(ctx, buyer.ID, usecase.CreateReviewInput{
		ProductID: product.ID,
		Rating:    4,
		Comment:   "Very fresh",
	})

	require.NoError(t, err)
	assert.Contains(t, fx.store.reviews, review.ID)

	// The farmer's aggregate rating reflects the new review.
	assert.InDelta(t, 4.0, fx.store.users[farmer.ID].FarmerProfile.Rating, 1e-9)
}

func TestReviewService_CreateReview_RatingBounds(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	product := seedProduct(fx.store, farmer.ID, 2.50, 10)

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.service.CreateReview(ctx, buyer.ID, usecase.CreateReviewInput{
			ProductID: product.ID,
			Rating:    rating,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}
	assert.Empty(t, fx.store.reviews)
}

func TestReviewService_CreateReview_FarmerRejected(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	farmer := seedFarmer(fx.store)
	product := seedProduct(fx.store, farmer.ID, 2.50, 10)

	_, err := fx.service.CreateReview(ctx, farmer.ID, usecase.CreateReviewInput{
		ProductID: product.ID,
		Rating:    5,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOnlyBuyers)
}

func TestReviewService_UpdateReview_AuthorOnly(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	author := seedBuyer(fx.store)
	other := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	product := seedProduct(fx.store, farmer.ID, 2.50, 10)

	review, err := fx.service.CreateReview(ctx, author.ID, usecase.CreateReviewInput{
		ProductID: product.ID,
		Rating:    2,
	})
	require.NoError(t, err)

	rating := 5
	_, err = fx.service.UpdateReview(ctx, other.ID, review.ID, &usecase.UpdateReviewInput{Rating: &rating})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotReviewAuthor)

	updated, err := fx.service.UpdateReview(ctx, author.ID, review.ID, &usecase.UpdateReviewInput{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.InDelta(t, 5.0, fx.store.users[farmer.ID].FarmerProfile.Rating, 1e-9)
}

func TestReviewService_DeleteReview_AuthorAndAdmin(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	author := seedBuyer(fx.store)
	stranger := seedBuyer(fx.store)
	admin := seedAdmin(fx.store)
	farmer := seedFarmer(fx.store)
	product := seedProduct(fx.store, farmer.ID, 2.50, 10)

	first, err := fx.service.CreateReview(ctx, author.ID, usecase.CreateReviewInput{ProductID: product.ID, Rating: 5})
	require.NoError(t, err)
	second, err := fx.service.CreateReview(ctx, author.ID, usecase.CreateReviewInput{ProductID: product.ID, Rating: 1})
	require.NoError(t, err)

	// A random buyer cannot moderate.
	err = fx.service.DeleteReview(ctx, stranger.ID, first.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotReviewAuthor)

	// The author deletes their own.
	require.NoError(t, fx.service.DeleteReview(ctx, author.ID, first.ID))
	assert.NotContains(t, fx.store.reviews, first.ID)

	// An admin moderates the other.
	require.NoError(t, fx.service.DeleteReview(ctx, admin.ID, second.ID))
	assert.Empty(t, fx.store.reviews)

	// With no reviews left, the farmer rating resets.
	assert.Zero(t, fx.store.users[farmer.ID].FarmerProfile.Rating)
}

func TestReviewService_ListProductReviews(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)
	farmer := seedFarmer(fx.store)
	product := seedProduct(fx.store, farmer.ID, 2.50, 10)
	otherProduct := seedProduct(fx.store, farmer.ID, 4.00, 5)

	_, err := fx.service.CreateReview(ctx, buyer.ID, usecase.CreateReviewInput{ProductID: product.ID, Rating: 5})
	require.NoError(t, err)
	_, err = fx.service.CreateReview(ctx, buyer.ID, usecase.CreateReviewInput{ProductID: otherProduct.ID, Rating: 3})
	require.NoError(t, err)

	reviews, err := fx.service.ListProductReviews(ctx, product.ID)

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	buyer := seedBuyer(fx.store)

	_, err := fx.service.CreateReview(ctx, buyer.ID, usecase.CreateReviewInput{
		ProductID: uuid.New(),
		Rating:    5,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
