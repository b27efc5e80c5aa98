package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderDate       time.Time `gorm:"not null;index"`
	DeliveryMethod  string    `gorm:"type:varchar(50)"`
	DeliveryAddress string    `gorm:"type:text"`
	DeliveryNotes   string    `gorm:"type:text"`
	TotalAmount     float64   `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	DeliveryDate    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Rows are frozen after insert.
type OrderItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int       `gorm:"not null"`
	PriceAtOrder float64   `gorm:"not null"`
	Subtotal     float64   `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
