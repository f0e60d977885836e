package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GeneratePickupQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://servease.example.com")
	deliveryID := uuid.New()

	qrBytes, err := service.GeneratePickupQR(deliveryID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_ParsePickupQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	deliveryID := uuid.New()

	data := QRCodeData{
		DeliveryID: deliveryID.String(),
		Type:       "pickup",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsed, err := service.ParsePickupQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, deliveryID, parsed)
}

func TestQRCodeService_ParsePickupQR_InvalidInputs(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	tests := []struct {
		name   string
		qrData string
	}{
		{"not JSON", "not-json-at-all"},
		{"wrong type", `{"delivery_id":"` + uuid.NewString() + `","type":"subscription"}`},
		{"bad UUID", `{"delivery_id":"not-a-uuid","type":"pickup"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := service.ParsePickupQR(tt.qrData)
			assert.Error(t, err)
			assert.Equal(t, uuid.Nil, parsed)
		})
	}
}

func TestQRCodeService_RoundTrip(t *testing.T) {
	// The payload embedded in a generated QR code must parse back to the
	// same delivery ID.
	service := NewQRCodeService(256, "M", "https://servease.example.com")
	deliveryID := uuid.New()

	data := QRCodeData{
		DeliveryID: deliveryID.String(),
		Type:       "pickup",
		URL:        "https://servease.example.com/deliveries/" + deliveryID.String() + "/pickup",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsed, err := service.ParsePickupQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, deliveryID, parsed)
}
