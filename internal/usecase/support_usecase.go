package usecase

import (
	"context"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateComplaintInput defines the data required to file a complaint.
type CreateComplaintInput struct {
	UserID  uuid.UUID
	Type    entity.ComplaintType
	Message string
}

// CreateTicketInput defines the data required to open a support ticket.
type CreateTicketInput struct {
	UserID  uuid.UUID
	Subject string
	Message string
}

// SupportUsecase defines the interface for complaint and support ticket
// operations. Both accept exactly one response; responding resolves them.
type SupportUsecase interface {
	CreateComplaint(ctx context.Context, input *CreateComplaintInput) (*entity.Complaint, error)
	RespondToComplaint(ctx context.Context, complaintID uuid.UUID, response string) (*entity.Complaint, error)
	ListComplaints(ctx context.Context) ([]*entity.Complaint, error)
	ListUserComplaints(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error)

	CreateSupportTicket(ctx context.Context, input *CreateTicketInput) (*entity.SupportTicket, error)
	RespondToSupportTicket(ctx context.Context, ticketID uuid.UUID, response string) (*entity.SupportTicket, error)
	ListTickets(ctx context.Context) ([]*entity.SupportTicket, error)
	ListUserTickets(ctx context.Context, userID uuid.UUID) ([]*entity.SupportTicket, error)
}
