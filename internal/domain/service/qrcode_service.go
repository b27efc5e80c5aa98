package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GeneratePickupQR generates a QR code a buyer presents at order pickup
	GeneratePickupQR(orderID uuid.UUID) ([]byte, error)

	// ParsePickupQR parses QR code data and returns the order ID
	ParsePickupQR(qrData string) (uuid.UUID, error)
}
