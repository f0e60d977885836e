package usecase

import (
	"context"
	"time"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateRequestInput defines the data required to submit a repair request.
type CreateRequestInput struct {
	CustomerID        uuid.UUID
	ApplianceType     entity.ApplianceType
	Brand             string
	IssueDescription  string
	Address           string
	PreferredDateTime time.Time
}

// RequestUsecase defines the interface for repair request lifecycle operations.
type RequestUsecase interface {
	// CreateRequest validates and persists a new pending request.
	CreateRequest(ctx context.Context, input *CreateRequestInput) (*entity.RepairRequest, error)

	// AssignShop accepts a pending request on behalf of a shop, moves it to
	// accepted and spawns the 1:1 delivery task.
	AssignShop(ctx context.Context, requestID, shopID uuid.UUID) (*entity.RepairRequest, error)

	// AdvanceStatus moves a request along its lifecycle. Illegal edges are
	// rejected and leave the record unchanged.
	AdvanceStatus(ctx context.Context, requestID uuid.UUID, next entity.RequestStatus) (*entity.RepairRequest, error)

	// Cancel moves any non-terminal request to cancelled.
	Cancel(ctx context.Context, requestID uuid.UUID) (*entity.RepairRequest, error)

	GetRequest(ctx context.Context, requestID uuid.UUID) (*entity.RepairRequest, error)
	ListCustomerRequests(ctx context.Context, customerID uuid.UUID) ([]*entity.RepairRequest, error)
	ListShopRequests(ctx context.Context, shopID uuid.UUID) ([]*entity.RepairRequest, error)
	ListPendingRequests(ctx context.Context) ([]*entity.RepairRequest, error)
	ListAllRequests(ctx context.Context) ([]*entity.RepairRequest, error)
}
