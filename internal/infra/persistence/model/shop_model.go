package model

import (
	"time"

	"github.com/google/uuid"
)

// ShopModel mirrors the 'repair_shops' table. The services and slots columns
// use GORM's built-in JSON serializer so the slices round-trip through jsonb.
type ShopModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Location        string    `gorm:"type:varchar(100)"`
	Contact         string    `gorm:"type:varchar(100)"`
	ServicesOffered []string  `gorm:"serializer:json;type:jsonb"`
	AvailableSlots  []string  `gorm:"serializer:json;type:jsonb"`
	Rating          float64   `gorm:"type:numeric(3,2)"`
	ReviewCount     int
	Latitude        float64 `gorm:"type:double precision"`
	Longitude       float64 `gorm:"type:double precision"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopModel) TableName() string {
	return "repair_shops"
}
