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

// CartHandler holds dependencies for shopping cart handlers.
type CartHandler struct {
	uc usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the buyer's cart, creating it on first access.
func (h *CartHandler) GetCart(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), buyerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// AddItem adds a product to the cart or increments the existing line.
func (h *CartHandler) AddItem(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	cart, err := h.uc.AddItem(c.Request().Context(), buyerID, req.ProductID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// SetItemQuantity replaces a line's quantity; zero or less removes the line.
func (h *CartHandler) SetItemQuantity(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart item ID")
	}

	var req setCartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	cart, err := h.uc.SetItemQuantity(c.Request().Context(), buyerID, itemID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart updated")
}

// RemoveItem deletes a line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart item ID")
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), buyerID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item removed from cart")
}

// ClearCart removes every line.
func (h *CartHandler) ClearCart(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cart, err := h.uc.ClearCart(c.Request().Context(), buyerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart cleared")
}
