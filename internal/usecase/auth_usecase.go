// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"freshfarm/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterBuyerInput defines the data required to register a new buyer.
type RegisterBuyerInput struct {
	Username         string
	Email            string
	Password         string
	Phone            string
	Address          string
	DeliveryAddress  string
	PreferredPayment string
}

// RegisterFarmerInput defines the data required to register a new farmer.
type RegisterFarmerInput struct {
	Username    string
	Email       string
	Password    string
	Phone       string
	Address     string
	FarmName    string
	Location    string
	Description string
}

// RegisterAdminInput defines the data required to register a new admin.
type RegisterAdminInput struct {
	Username  string
	Email     string
	Password  string
	Phone     string
	AdminRole string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User  *entity.User
	Token string
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the interface for registration and login operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	RegisterBuyer(ctx context.Context, input RegisterBuyerInput) (*RegisterOutput, error)
	RegisterFarmer(ctx context.Context, input RegisterFarmerInput) (*RegisterOutput, error)
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
