package model

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintModel mirrors the 'complaints' table.
type ComplaintModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(32);not null"`
	Message     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
	Response    *string   `gorm:"type:text"`
	RespondedAt *time.Time
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ComplaintModel) TableName() string {
	return "complaints"
}

// TicketModel mirrors the 'support_tickets' table.
type TicketModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName    string    `gorm:"type:varchar(100)"`
	UserEmail   string    `gorm:"type:varchar(255)"`
	Subject     string    `gorm:"type:varchar(255);not null"`
	Message     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
	Response    *string   `gorm:"type:text"`
	RespondedAt *time.Time
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TicketModel) TableName() string {
	return "support_tickets"
}
