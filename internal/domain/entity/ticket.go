// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicketStatus is the state of a support ticket.
type SupportTicketStatus string

const (
	TicketOpen       SupportTicketStatus = "open"
	TicketInProgress SupportTicketStatus = "in_progress"
	TicketResolved   SupportTicketStatus = "resolved"
)

// IsTerminal reports whether the ticket accepts no further responses.
func (s SupportTicketStatus) IsTerminal() bool {
	return s == TicketResolved
}

// SupportTicket is a user-submitted support question, terminal once
// responded to. One response per ticket, no threading.
type SupportTicket struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"user_id"`
	UserName    string              `json:"user_name"`
	UserEmail   string              `json:"user_email"`
	Subject     string              `json:"subject"`
	Message     string              `json:"message"`
	Status      SupportTicketStatus `json:"status"`
	Response    *string             `json:"response"`
	RespondedAt *time.Time          `json:"responded_at"`
	CreatedAt   time.Time           `json:"created_at"`
}
