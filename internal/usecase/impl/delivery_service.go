package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/domain/repository"
	"servease/internal/domain/service"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// requestEdge is a parent-request transition driven by a delivery transition.
type requestEdge struct {
	from entity.RequestStatus
	to   entity.RequestStatus
}

// deliveryReconciliation maps delivery transitions onto the parent request
// edge they drive. The parent edge is applied only when the request sits in
// the expected source state; otherwise the skip is logged and the delivery
// transition stands on its own.
var deliveryReconciliation = map[entity.DeliveryStatus]requestEdge{
	entity.DeliveryPickupScheduled: {from: entity.RequestRepaired, to: entity.RequestPickupScheduled},
	entity.DeliveryInTransit:       {from: entity.RequestPickupScheduled, to: entity.RequestInTransit},
	entity.DeliveryDelivered:       {from: entity.RequestInTransit, to: entity.RequestDelivered},
}

// deliveryService implements the DeliveryUsecase interface.
type deliveryService struct {
	deliveryRepo  repository.DeliveryRepository
	requestRepo   repository.RequestRepository
	userRepo      repository.UserRepository
	qrcodeService service.QRCodeService
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// DeliveryServiceParams holds dependencies for DeliveryService, injected by Fx.
type DeliveryServiceParams struct {
	fx.In

	DeliveryRepo  repository.DeliveryRepository
	RequestRepo   repository.RequestRepository
	UserRepo      repository.UserRepository
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewDeliveryService is the constructor for deliveryService.
func NewDeliveryService(params DeliveryServiceParams) usecase.DeliveryUsecase {
	return &deliveryService{
		deliveryRepo:  params.DeliveryRepo,
		requestRepo:   params.RequestRepo,
		userRepo:      params.UserRepo,
		qrcodeService: params.QRCodeService,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *deliveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AcceptDelivery claims an unassigned delivery for a partner and schedules
// the pickup.
func (srv *deliveryService) AcceptDelivery(ctx context.Context, deliveryID, partnerID uuid.UUID) (*entity.Delivery, error) {
	partner, err := srv.userRepo.FindByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to accept delivery")
		}

		return nil, errors.Wrap(err, "failed to find partner")
	}
	if partner.Role != entity.RoleDeliveryPartner {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only delivery partners may accept deliveries")
	}

	accepted, err := srv.deliveryRepo.Accept(ctx, deliveryID, partner.ID, partner.FullName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDeliveryNotFound):
			return nil, errors.Wrap(domainerrors.ErrDeliveryNotFound, "failed to accept delivery")
		case errors.Is(err, repository.ErrDeliveryAlreadyAccepted):
			return nil, errors.Wrap(domainerrors.ErrDeliveryAlreadyAccepted, "failed to accept delivery")
		}

		return nil, errors.Wrap(err, "failed to accept delivery")
	}

	srv.log(ctx).Info("Delivery accepted", slog.Any("deliveryID", accepted.ID), slog.Any("partnerID", partner.ID))
	srv.reconcileRequest(ctx, accepted)

	return accepted, nil
}

// AdvanceDelivery moves a delivery one legal step along its lifecycle and
// drives the matching edge on the parent request.
func (srv *deliveryService) AdvanceDelivery(ctx context.Context, deliveryID uuid.UUID, next entity.DeliveryStatus) (*entity.Delivery, error) {
	if !next.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown delivery status")
	}

	updated, err := srv.deliveryRepo.Transition(ctx, deliveryID, next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDeliveryNotFound):
			return nil, errors.Wrap(domainerrors.ErrDeliveryNotFound, "failed to advance delivery")
		case errors.Is(err, repository.ErrIllegalTransition):
			srv.log(ctx).Warn("Rejected illegal delivery transition",
				slog.Any("deliveryID", deliveryID),
				slog.String("to", next.String()))

			return nil, errors.Wrap(domainerrors.ErrInvalidTransition, "failed to advance delivery")
		}

		return nil, errors.Wrap(err, "failed to transition delivery")
	}

	srv.log(ctx).Info("Delivery status advanced", slog.Any("deliveryID", deliveryID), slog.String("to", next.String()))
	srv.reconcileRequest(ctx, updated)

	return updated, nil
}

func (srv *deliveryService) GetDelivery(ctx context.Context, deliveryID uuid.UUID) (*entity.Delivery, error) {
	delivery, err := srv.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDeliveryNotFound, "failed to load delivery")
		}

		return nil, errors.Wrap(err, "failed to find delivery")
	}

	return delivery, nil
}

func (srv *deliveryService) GetDeliveryForRequest(ctx context.Context, requestID uuid.UUID) (*entity.Delivery, error) {
	delivery, err := srv.deliveryRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDeliveryNotFound, "no delivery for request")
		}

		return nil, errors.Wrap(err, "failed to find delivery by request")
	}

	return delivery, nil
}

func (srv *deliveryService) ListPartnerDeliveries(ctx context.Context, partnerID uuid.UUID) ([]*entity.Delivery, error) {
	deliveries, err := srv.deliveryRepo.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list partner deliveries")
	}

	return deliveries, nil
}

func (srv *deliveryService) ListUnassignedDeliveries(ctx context.Context) ([]*entity.Delivery, error) {
	deliveries, err := srv.deliveryRepo.ListUnassigned(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unassigned deliveries")
	}

	return deliveries, nil
}

// PickupQR renders a PNG QR code encoding the delivery ID.
func (srv *deliveryService) PickupQR(ctx context.Context, deliveryID uuid.UUID) ([]byte, error) {
	delivery, err := srv.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GeneratePickupQR(delivery.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate pickup QR")
	}

	return png, nil
}

// reconcileRequest drives the parent-request edge matching the delivery's
// new status. The delivery transition has already committed; a parent in an
// unexpected state only produces a log line.
func (srv *deliveryService) reconcileRequest(ctx context.Context, delivery *entity.Delivery) {
	edge, ok := deliveryReconciliation[delivery.Status]
	if !ok {
		return
	}

	applied, err := srv.requestRepo.TransitionFrom(ctx, delivery.RequestID, edge.from, edge.to)
	if err != nil {
		srv.log(ctx).Warn("Failed to reconcile parent request",
			slog.Any("requestID", delivery.RequestID),
			slog.Any("error", err))

		return
	}
	if !applied {
		srv.log(ctx).Debug("Parent request not in expected state, reconciliation skipped",
			slog.Any("requestID", delivery.RequestID),
			slog.String("expected", edge.from.String()))

		return
	}

	request, err := srv.requestRepo.FindByID(ctx, delivery.RequestID)
	if err != nil {
		return
	}

	event := &service.RequestStatusEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		RepairID:   request.ID.String(),
		CustomerID: request.CustomerID.String(),
		FromStatus: edge.from.String(),
		ToStatus:   edge.to.String(),
		OccurredAt: time.Now().Format(time.RFC3339),
	}
	if request.AssignedShopID != nil {
		event.ShopID = request.AssignedShopID.String()
	}

	if err := srv.publisher.PublishStatusEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish status event", slog.Any("requestID", request.ID), slog.Any("error", err))
	}
}
