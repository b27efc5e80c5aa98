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

// messageService implements the MessageUsecase interface.
type messageService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.MessageUsecase {
	return &messageService{
		txManager: txManager,
		logger:    logger,
	}
}

// SendMessage delivers a direct message to another account.
func (srv *messageService) SendMessage(ctx context.Context, senderID uuid.UUID, input usecase.SendMessageInput) (*entity.Message, error) {
	srv.logger.Info("Sending message", "senderID", senderID, "recipientID", input.RecipientID)

	if input.Content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "message content is empty")
	}

	message := &entity.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		Content:     input.Content,
		SentAt:      time.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.UserRepo().FindByID(ctx, input.RecipientID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "recipient not found")
			}

			return errors.Wrap(err, "failed to find recipient")
		}

		if err := repoFactory.MessageRepo().Create(ctx, message); err != nil {
			return errors.Wrap(err, "failed to create message")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to send message")
	}

	return message, nil
}

// ListMyMessages returns messages received by the user, newest first.
func (srv *messageService) ListMyMessages(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.MessageRepo().ListByRecipientID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list messages")
		}
		messages = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return messages, nil
}

// ListConversation returns the messages exchanged between two users,
// oldest first.
func (srv *messageService) ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.MessageRepo().ListConversation(ctx, userID, otherID)
		if err != nil {
			return errors.Wrap(err, "failed to list conversation")
		}
		messages = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversation")
	}

	return messages, nil
}

// MarkRead marks a received message as read. Anyone other than the
// recipient gets not-found so message existence never leaks.
func (srv *messageService) MarkRead(ctx context.Context, userID, messageID uuid.UUID) error {
	srv.logger.Debug("Marking message read", "userID", userID, "messageID", messageID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		messageRepo := repoFactory.MessageRepo()

		found, err := messageRepo.FindByID(ctx, messageID)
		if err != nil {
			if errors.Is(err, repository.ErrMessageNotFound) {
				return errors.Wrap(domainerrors.ErrMessageNotFound, "message not found")
			}

			return errors.Wrap(err, "failed to find message")
		}
		if found.RecipientID != userID {
			return errors.Wrap(domainerrors.ErrMessageNotFound, "message not addressed to user")
		}

		if err := messageRepo.MarkRead(ctx, messageID); err != nil {
			return errors.Wrap(err, "failed to mark message read")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to mark message read")
	}

	return nil
}
