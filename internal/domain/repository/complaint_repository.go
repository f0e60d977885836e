package repository

import (
	"context"
	"errors"
	"time"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrComplaintNotFound is returned when a complaint does not exist.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintRepository defines the standard operations for complaint persistence.
type ComplaintRepository interface {
	// FindByID retrieves a single complaint by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)

	// ListAll returns every complaint, newest first.
	ListAll(ctx context.Context) ([]*entity.Complaint, error)

	// ListByUser returns the complaints filed by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error)

	// Create persists a new complaint.
	Create(ctx context.Context, complaint *entity.Complaint) error

	// Respond attaches the single allowed response and resolves the
	// complaint atomically. Returns ErrIllegalTransition when the
	// complaint is already terminal, so concurrent responders cannot
	// both succeed.
	Respond(ctx context.Context, id uuid.UUID, response string, respondedAt time.Time) (*entity.Complaint, error)
}
