// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines persistence operations for user accounts and
// their role profiles.
type UserRepository interface {
	// Create persists a new user together with its role profile.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID, including its role profile.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by username, including its role profile.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a user by email, including its role profile.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update persists changes to the user row and its role profile.
	Update(ctx context.Context, user *entity.User) error

	// SetActive flips the account's active flag.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// List returns all users, optionally filtered by role.
	List(ctx context.Context, role *entity.Role) ([]*entity.User, error)

	// Delete removes the user row and its role profile.
	Delete(ctx context.Context, id uuid.UUID) error
}
