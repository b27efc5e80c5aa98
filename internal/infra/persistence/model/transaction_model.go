package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionModel mirrors the 'transactions' table, the payment ledger.
type TransactionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID       uuid.UUID `gorm:"type:uuid;unique;not null"`
	Amount        float64   `gorm:"not null"`
	PaymentMethod string    `gorm:"type:varchar(50)"`
	Status        string    `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
