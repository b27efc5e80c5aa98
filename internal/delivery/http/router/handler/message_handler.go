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

// MessageHandler holds dependencies for direct messaging handlers.
type MessageHandler struct {
	uc usecase.MessageUsecase
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// SendMessage sends a direct message to another account.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	senderID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.SendMessageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}

	message, err := h.uc.SendMessage(c.Request().Context(), senderID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, message, "Message sent successfully")
}

// ListMyMessages returns messages received by the authenticated user.
func (h *MessageHandler) ListMyMessages(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	messages, err := h.uc.ListMyMessages(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Messages retrieved successfully")
}

// ListConversation returns the exchange with another account, oldest first.
func (h *MessageHandler) ListConversation(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	messages, err := h.uc.ListConversation(c.Request().Context(), userID, otherID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Conversation retrieved successfully")
}

// MarkRead marks a received message as read. Recipient only.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid message ID")
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, messageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Message marked as read")
}
