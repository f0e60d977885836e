package usecase

import (
	"context"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// DeliveryUsecase defines the interface for delivery task operations.
type DeliveryUsecase interface {
	// AcceptDelivery claims an unassigned delivery for a partner and moves
	// it to pickup_scheduled.
	AcceptDelivery(ctx context.Context, deliveryID, partnerID uuid.UUID) (*entity.Delivery, error)

	// AdvanceDelivery moves a delivery along its lifecycle. Reaching
	// picked_up stamps the pickup time; pickup_scheduled, in_transit and
	// delivered drive the matching edge on the parent request.
	AdvanceDelivery(ctx context.Context, deliveryID uuid.UUID, next entity.DeliveryStatus) (*entity.Delivery, error)

	GetDelivery(ctx context.Context, deliveryID uuid.UUID) (*entity.Delivery, error)
	GetDeliveryForRequest(ctx context.Context, requestID uuid.UUID) (*entity.Delivery, error)
	ListPartnerDeliveries(ctx context.Context, partnerID uuid.UUID) ([]*entity.Delivery, error)
	ListUnassignedDeliveries(ctx context.Context) ([]*entity.Delivery, error)

	// PickupQR renders a PNG QR code encoding the delivery ID for handoff
	// verification at the customer's door.
	PickupQR(ctx context.Context, deliveryID uuid.UUID) ([]byte, error)
}
