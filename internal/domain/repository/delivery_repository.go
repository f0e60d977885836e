package repository

import (
	"context"
	"errors"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDeliveryNotFound is returned when a delivery task does not exist.
var ErrDeliveryNotFound = errors.New("delivery not found")

// ErrDeliveryAlreadyAccepted is returned when Accept races and the delivery
// already has an assigned partner.
var ErrDeliveryAlreadyAccepted = errors.New("delivery already accepted")

// DeliveryRepository defines the standard operations for delivery persistence.
// Accept and Transition are atomic check-then-set operations.
type DeliveryRepository interface {
	// FindByID retrieves a single delivery by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error)

	// FindByRequestID retrieves the delivery spawned for the given request.
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Delivery, error)

	// ListAll returns every delivery, newest first.
	ListAll(ctx context.Context) ([]*entity.Delivery, error)

	// ListByPartner returns the deliveries accepted by the given partner.
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*entity.Delivery, error)

	// ListUnassigned returns the deliveries still awaiting a partner.
	ListUnassigned(ctx context.Context) ([]*entity.Delivery, error)

	// Create persists a new delivery.
	Create(ctx context.Context, delivery *entity.Delivery) error

	// Accept atomically claims an unassigned delivery for the given partner.
	// Returns ErrDeliveryAlreadyAccepted when a partner is already set.
	Accept(ctx context.Context, id uuid.UUID, partnerID uuid.UUID, partnerName string) (*entity.Delivery, error)

	// Transition atomically moves the delivery from its current status to
	// next, provided the edge is legal. Moving into picked_up stamps
	// PickupTime. Returns ErrIllegalTransition otherwise.
	Transition(ctx context.Context, id uuid.UUID, next entity.DeliveryStatus) (*entity.Delivery, error)
}
