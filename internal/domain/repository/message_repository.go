package repository

import (
	"context"
	"errors"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMessageNotFound is returned when a message is not found.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *entity.Message) error

	// FindByID retrieves a message by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)

	// ListConversation returns all messages exchanged between two users,
	// oldest first.
	ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error)

	// ListByRecipientID returns messages received by a user, newest first.
	ListByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]*entity.Message, error)

	// MarkRead marks a message as read.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes every message the user sent or received.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
