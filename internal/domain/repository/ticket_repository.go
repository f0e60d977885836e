package repository

import (
	"context"
	"errors"
	"time"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned when a support ticket does not exist.
var ErrTicketNotFound = errors.New("support ticket not found")

// TicketRepository defines the standard operations for support ticket persistence.
type TicketRepository interface {
	// FindByID retrieves a single support ticket by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error)

	// ListAll returns every support ticket, newest first.
	ListAll(ctx context.Context) ([]*entity.SupportTicket, error)

	// ListByUser returns the tickets opened by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SupportTicket, error)

	// Create persists a new support ticket.
	Create(ctx context.Context, ticket *entity.SupportTicket) error

	// Respond attaches the single allowed response and resolves the
	// ticket atomically. Returns ErrIllegalTransition when the ticket
	// is already terminal, so concurrent responders cannot both succeed.
	Respond(ctx context.Context, id uuid.UUID, response string, respondedAt time.Time) (*entity.SupportTicket, error)
}
