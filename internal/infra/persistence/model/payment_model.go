package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentModel mirrors the 'payments' table, tied 1:1 to a repair request.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RequestID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        float64   `gorm:"type:numeric(10,2);not null"`
	Status        string    `gorm:"type:varchar(32);not null;index"`
	Method        string    `gorm:"type:varchar(32);not null"`
	PaymentDate   *time.Time
	TransactionID string `gorm:"type:varchar(64);not null;unique"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
