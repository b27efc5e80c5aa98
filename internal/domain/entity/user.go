// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity record shared by every account role.
// Exactly one of the role payload pointers is non-nil, selected by Role.
// Core logic dispatches on the Role tag, never on the payload shape.
type User struct {
	ID           uuid.UUID
	Username     string // Unique login identifier.
	Email        string // Unique contact email.
	PasswordHash string // Opaque credential hash; never the plaintext.
	Phone        string
	Address      string
	Role         Role
	Active       bool // Deactivated accounts cannot authenticate.
	RegisteredAt time.Time

	FarmerProfile *FarmerProfile // Non-nil iff Role == RoleFarmer.
	BuyerProfile  *BuyerProfile  // Non-nil iff Role == RoleBuyer.
	AdminProfile  *AdminProfile  // Non-nil iff Role == RoleAdmin.
}

// FarmerProfile holds data specific to seller accounts.
type FarmerProfile struct {
	UserID      uuid.UUID
	FarmName    string
	Location    string
	Description string
	Rating      float64
}

// BuyerProfile holds data specific to purchasing accounts.
type BuyerProfile struct {
	UserID           uuid.UUID
	DeliveryAddress  string
	PreferredPayment string
}

// AdminProfile holds data specific to administrative accounts.
type AdminProfile struct {
	UserID    uuid.UUID
	AdminRole string // Free-form administrative role label.
}
