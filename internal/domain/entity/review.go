package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating of a product. An admin who deletes a review
// is recorded as its moderator.
type Review struct {
	ID            uuid.UUID
	BuyerID       uuid.UUID
	ProductID     uuid.UUID
	Rating        int // 1 through 5.
	Comment       string
	ModeratedByID *uuid.UUID
	CreatedAt     time.Time
}
