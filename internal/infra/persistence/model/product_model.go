package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	FarmerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Category    string    `gorm:"type:varchar(100);index"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"not null"`
	Unit        string    `gorm:"type:varchar(50)"`
	Quantity    int       `gorm:"not null"`
	ImageURL    string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Available   bool      `gorm:"not null"`
	PostedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
