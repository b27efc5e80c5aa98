// Package model contains the GORM persistence models mirroring the
// database tables. They are mapped to and from domain entities by the
// postgres repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(100);unique;not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:text"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	Active       bool      `gorm:"not null;default:true"`
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FarmerProfile *FarmerProfileModel `gorm:"foreignKey:UserID"`
	BuyerProfile  *BuyerProfileModel  `gorm:"foreignKey:UserID"`
	AdminProfile  *AdminProfileModel  `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FarmerProfileModel mirrors the 'farmer_profiles' table. UserID references users.id (UUID).
type FarmerProfileModel struct {
	UserID      uuid.UUID `gorm:"primaryKey"`
	FarmName    string    `gorm:"type:varchar(100)"`
	Location    string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	Rating      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FarmerProfileModel) TableName() string {
	return "farmer_profiles"
}

// BuyerProfileModel mirrors the 'buyer_profiles' table. UserID references users.id (UUID).
type BuyerProfileModel struct {
	UserID           uuid.UUID `gorm:"primaryKey"`
	DeliveryAddress  string    `gorm:"type:text"`
	PreferredPayment string    `gorm:"type:varchar(50)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (BuyerProfileModel) TableName() string {
	return "buyer_profiles"
}

// AdminProfileModel mirrors the 'admin_profiles' table. UserID references users.id (UUID).
type AdminProfileModel struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	AdminRole string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminProfileModel) TableName() string {
	return "admin_profiles"
}
