package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a new access token for a given user.
	GenerateToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
