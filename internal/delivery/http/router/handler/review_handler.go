package handler

import (
	"net/http"

	"freshfarm/internal/delivery/http/middleware"
	"freshfarm/internal/delivery/http/response"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for product review handlers.
type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// CreateReview posts a review of a product. Buyer only.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	review, err := h.uc.CreateReview(c.Request().Context(), buyerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review created successfully")
}

// UpdateReview edits the author's own review.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review ID")
	}

	var input usecase.UpdateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	review, err := h.uc.UpdateReview(c.Request().Context(), buyerID, reviewID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, review, "Review updated successfully")
}

// DeleteReview removes a review, by its author or by an admin moderator.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	actorID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review ID")
	}

	if err := h.uc.DeleteReview(c.Request().Context(), actorID, reviewID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted successfully")
}

// ListProductReviews returns all reviews of a product.
func (h *ReviewHandler) ListProductReviews(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	reviews, err := h.uc.ListProductReviews(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "Reviews retrieved successfully")
}
