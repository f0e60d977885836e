package repository

import (
	"context"
	"errors"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPaymentNotFound is returned when a payment record does not exist.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines the standard operations for payment persistence.
type PaymentRepository interface {
	// FindByID retrieves a single payment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	// FindByRequestID retrieves the payment attached to the given request.
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Payment, error)

	// ListAll returns every payment, newest first.
	ListAll(ctx context.Context) ([]*entity.Payment, error)

	// Create persists a new payment.
	Create(ctx context.Context, payment *entity.Payment) error

	// Transition atomically moves the payment from its current status to
	// next, provided the edge is legal. Moving into paid stamps
	// PaymentDate. Returns ErrIllegalTransition otherwise.
	Transition(ctx context.Context, id uuid.UUID, next entity.PaymentStatus) (*entity.Payment, error)
}
