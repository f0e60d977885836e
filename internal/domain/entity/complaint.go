// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintStatus is the state of a complaint. A complaint is terminal once
// it has been responded to; there is no threading, one response per record.
type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintInReview ComplaintStatus = "in_review"
	ComplaintResolved ComplaintStatus = "resolved"
	ComplaintClosed   ComplaintStatus = "closed"
)

// IsTerminal reports whether the complaint accepts no further responses.
func (s ComplaintStatus) IsTerminal() bool {
	return s == ComplaintResolved || s == ComplaintClosed
}

// ComplaintType categorizes what the complaint is about.
type ComplaintType string

const (
	ComplaintTypeService  ComplaintType = "service"
	ComplaintTypeDelivery ComplaintType = "delivery"
	ComplaintTypePayment  ComplaintType = "payment"
	ComplaintTypeOther    ComplaintType = "other"
)

// IsValid checks if the ComplaintType is a valid value.
func (t ComplaintType) IsValid() bool {
	switch t {
	case ComplaintTypeService, ComplaintTypeDelivery, ComplaintTypePayment, ComplaintTypeOther:
		return true
	default:
		return false
	}
}

// Complaint is an independent lifecycle object keyed by the submitting user.
type Complaint struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        ComplaintType   `json:"type"`
	Message     string          `json:"message"`
	Status      ComplaintStatus `json:"status"`
	Response    *string         `json:"response"`
	RespondedAt *time.Time      `json:"responded_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
