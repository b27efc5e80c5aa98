package handler

import (
	"net/http"

	"freshfarm/internal/delivery/http/middleware"
	"freshfarm/internal/delivery/http/response"
	"freshfarm/internal/domain/entity"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PlaceOrder places a new order. Buyer only.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), buyerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// CancelOrder cancels a pending order and restores its stock. Buyer only.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.CancelOrder(c.Request().Context(), buyerID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled successfully")
}

// UpdateStatus moves an order to a new status. Admin or selling farmer.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actorID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	status := entity.OrderStatus(req.Status)
	if !status.IsValid() {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown order status: "+req.Status)
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), actorID, orderID, status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// GetOrder returns an order visible to the actor.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actorID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), actorID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMyOrders returns the authenticated buyer's orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), buyerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListFarmerOrders returns orders containing the farmer's products.
func (h *OrderHandler) ListFarmerOrders(c echo.Context) error {
	farmerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.uc.ListFarmerOrders(c.Request().Context(), farmerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// PickupQR streams the PNG QR code for a pickup order. Buyer only.
func (h *OrderHandler) PickupQR(c echo.Context) error {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	png, err := h.uc.PickupQR(c.Request().Context(), buyerID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
