package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GeneratePickupQR generates a QR code for a delivery pickup handoff
	GeneratePickupQR(deliveryID uuid.UUID) ([]byte, error)

	// ParsePickupQR parses QR code data and returns the delivery ID
	ParsePickupQR(qrData string) (uuid.UUID, error)
}
