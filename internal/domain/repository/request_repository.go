package repository

import (
	"context"
	"errors"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRequestNotFound is returned when a repair request does not exist.
var ErrRequestNotFound = errors.New("repair request not found")

// ErrRequestAlreadyAssigned is returned when Assign races and the request
// has already left the pending state.
var ErrRequestAlreadyAssigned = errors.New("repair request already assigned")

// ErrIllegalTransition is returned when a status change violates the
// lifecycle transition table.
var ErrIllegalTransition = errors.New("illegal status transition")

// RequestRepository defines the standard operations for repair request persistence.
// Assign and Transition are atomic check-then-set operations so concurrent
// callers cannot both succeed on the same edge.
type RequestRepository interface {
	// FindByID retrieves a single repair request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RepairRequest, error)

	// ListAll returns every repair request, newest first.
	ListAll(ctx context.Context) ([]*entity.RepairRequest, error)

	// ListByCustomer returns the requests submitted by the given customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.RepairRequest, error)

	// ListByShop returns the requests assigned to the given shop.
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*entity.RepairRequest, error)

	// ListPending returns the requests still awaiting shop acceptance.
	ListPending(ctx context.Context) ([]*entity.RepairRequest, error)

	// Create persists a new repair request.
	Create(ctx context.Context, request *entity.RepairRequest) error

	// Assign atomically moves a pending request to accepted and records the
	// accepting shop. Returns ErrRequestAlreadyAssigned when the request is
	// no longer pending.
	Assign(ctx context.Context, id uuid.UUID, shopID uuid.UUID, shopName string) (*entity.RepairRequest, error)

	// Transition atomically moves the request from its current status to
	// next, provided the edge is legal. Returns ErrIllegalTransition otherwise.
	Transition(ctx context.Context, id uuid.UUID, next entity.RequestStatus) (*entity.RepairRequest, error)

	// TransitionFrom atomically moves the request from the expected status
	// to next. It reports whether the edge was applied; a request not in
	// the expected status is skipped, not an error.
	TransitionFrom(ctx context.Context, id uuid.UUID, expected, next entity.RequestStatus) (bool, error)
}
