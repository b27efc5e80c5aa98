package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageModel mirrors the 'messages' table.
type MessageModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content     string    `gorm:"type:text;not null"`
	Read        bool      `gorm:"not null;default:false"`
	SentAt      time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}
