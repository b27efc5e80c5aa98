package usecase

import (
	"context"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// --- Input DTOs ---

// UpdateProfileInput defines the updatable account fields. Nil pointers
// leave the current value untouched.
type UpdateProfileInput struct {
	Username *string `json:"username,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`

	// Buyer fields.
	DeliveryAddress  *string `json:"delivery_address,omitempty"`
	PreferredPayment *string `json:"preferred_payment,omitempty"`

	// Farmer fields.
	FarmName    *string `json:"farm_name,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AccountUsecase defines the interface for profile management and the
// account deletion cascade.
type AccountUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error

	// DeleteAccount removes the caller's own account and every record
	// that references it, in one transaction.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error

	// AdminDeleteUser removes another user's account the same way.
	// Admins cannot delete themselves through this path.
	AdminDeleteUser(ctx context.Context, adminID, targetID uuid.UUID) error
}
