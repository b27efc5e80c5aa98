package repository

import (
	"context"
	"errors"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when a ledger record is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository defines persistence operations for the payment ledger.
type TransactionRepository interface {
	// Create persists a new ledger record.
	Create(ctx context.Context, txn *entity.Transaction) error

	// FindByID retrieves a ledger record by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByOrderID retrieves the ledger record linked to an order.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Transaction, error)

	// List returns all ledger records, newest first.
	List(ctx context.Context) ([]*entity.Transaction, error)

	// DeleteByOrderID removes the ledger record linked to an order.
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
