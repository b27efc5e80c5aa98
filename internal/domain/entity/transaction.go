package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionProcessing is the status every ledger record is created with.
// The ledger is local bookkeeping, not a payment-gateway integration.
const TransactionProcessing = "PROCESSING"

// Transaction is the payment-ledger record created 1:1 with an order at
// placement time. It is never mutated after creation and its amount
// always equals the order total.
type Transaction struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Amount        float64
	PaymentMethod string
	Status        string
	CreatedAt     time.Time
}
