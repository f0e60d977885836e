package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryModel mirrors the 'deliveries' table. Exactly one row exists per
// repair request, created when a shop accepts the request.
type DeliveryModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RequestID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	AssignedPartnerID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedPartnerName *string    `gorm:"type:varchar(100)"`
	PickupTime          *time.Time
	Status              string  `gorm:"type:varchar(32);not null;index"`
	TrackingDetails     string  `gorm:"type:text"`
	DeliveryFee         float64 `gorm:"type:numeric(10,2)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeliveryModel) TableName() string {
	return "deliveries"
}
