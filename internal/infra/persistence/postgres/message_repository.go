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

// messageRepository implements the domain's MessageRepository interface using GORM.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

// Create persists a new message.
func (repo *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	messageM := fromMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown sender or recipient reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create message")
	}

	message.ID = messageM.ID

	return nil
}

// FindByID retrieves a message by ID.
func (repo *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	var messageM model.MessageModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&messageM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMessageNotFound
		}

		return nil, errors.Wrap(err, "failed to find message by id")
	}

	return toMessageDomain(&messageM), nil
}

// ListConversation returns all messages exchanged between two users, oldest first.
func (repo *messageRepository) ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	var models []*model.MessageModel
	err := repo.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("sent_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversation")
	}

	return toMessageDomainList(models), nil
}

// ListByRecipientID returns messages received by a user, newest first.
func (repo *messageRepository) ListByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]*entity.Message, error) {
	var models []*model.MessageModel
	err := repo.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("sent_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list received messages")
	}

	return toMessageDomainList(models), nil
}

// MarkRead marks a message as read.
func (repo *messageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MessageModel{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark message read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMessageNotFound
	}

	return nil
}

// DeleteByUserID removes every message the user sent or received.
func (repo *messageRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Delete(&model.MessageModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete user messages")
	}

	return nil
}

// --- Mapper Functions ---

func toMessageDomain(data *model.MessageModel) *entity.Message {
	if data == nil {
		return nil
	}

	return &entity.Message{
		ID:          data.ID,
		SenderID:    data.SenderID,
		RecipientID: data.RecipientID,
		Content:     data.Content,
		Read:        data.Read,
		SentAt:      data.SentAt,
	}
}

func toMessageDomainList(models []*model.MessageModel) []*entity.Message {
	messages := make([]*entity.Message, 0, len(models))
	for _, messageM := range models {
		messages = append(messages, toMessageDomain(messageM))
	}

	return messages
}

func fromMessageDomain(data *entity.Message) *model.MessageModel {
	if data == nil {
		return nil
	}

	return &model.MessageModel{
		ID:          data.ID,
		SenderID:    data.SenderID,
		RecipientID: data.RecipientID,
		Content:     data.Content,
		Read:        data.Read,
		SentAt:      data.SentAt,
	}
}
