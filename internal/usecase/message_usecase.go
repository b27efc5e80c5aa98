package usecase

import (
	"context"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// SendMessageInput defines the data required to send a direct message.
type SendMessageInput struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
}

// MessageUsecase defines the interface for direct messaging between accounts.
type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID uuid.UUID, input SendMessageInput) (*entity.Message, error)
	ListMyMessages(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
	ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]*entity.Message, error)

	// MarkRead marks a received message as read. Only the recipient sees
	// the message; everyone else gets not-found.
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) error
}
