package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestModel mirrors the 'repair_requests' table. Rows are never deleted;
// terminal records stay for history.
type RequestModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerName      string     `gorm:"type:varchar(100)"`
	CustomerPhone     string     `gorm:"type:varchar(32)"`
	ApplianceType     string     `gorm:"type:varchar(32);not null"`
	Brand             string     `gorm:"type:varchar(100);not null"`
	IssueDescription  string     `gorm:"type:text;not null"`
	Address           string     `gorm:"type:text;not null"`
	PreferredDateTime time.Time  `gorm:"not null"`
	AssignedShopID    *uuid.UUID `gorm:"type:uuid;index"`
	AssignedShopName  *string    `gorm:"type:varchar(100)"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (RequestModel) TableName() string {
	return "repair_requests"
}
