package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Rating        int        `gorm:"not null"`
	Comment       string     `gorm:"type:text"`
	ModeratedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
