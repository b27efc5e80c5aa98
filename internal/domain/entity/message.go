package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two accounts. It participates in
// the core only through cascade deletion.
type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	Read        bool
	SentAt      time.Time
}
