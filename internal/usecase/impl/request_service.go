package impl

import (
	"context"
	"log/slog"
	"strings"
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

// defaultDeliveryFee is charged on every delivery task spawned for an
// accepted request.
const defaultDeliveryFee = 25.00

// requestService implements the RequestUsecase interface.
type requestService struct {
	txManager    repository.TransactionManager
	requestRepo  repository.RequestRepository
	shopRepo     repository.ShopRepository
	deliveryRepo repository.DeliveryRepository
	userRepo     repository.UserRepository
	publisher    service.EventPublisher
	notifier     service.NotificationService
	logger       *slog.Logger
}

// RequestServiceParams holds dependencies for RequestService, injected by Fx.
type RequestServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	RequestRepo  repository.RequestRepository
	ShopRepo     repository.ShopRepository
	DeliveryRepo repository.DeliveryRepository
	UserRepo     repository.UserRepository
	Publisher    service.EventPublisher
	Notifier     service.NotificationService `optional:"true"`
	Logger       *slog.Logger
}

// NewRequestService is the constructor for requestService.
func NewRequestService(params RequestServiceParams) usecase.RequestUsecase {
	return &requestService{
		txManager:    params.TxManager,
		requestRepo:  params.RequestRepo,
		shopRepo:     params.ShopRepo,
		deliveryRepo: params.DeliveryRepo,
		userRepo:     params.UserRepo,
		publisher:    params.Publisher,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *requestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRequest validates the input and persists a new pending request with
// the customer's contact details denormalized onto it.
func (srv *requestService) CreateRequest(ctx context.Context, input *usecase.CreateRequestInput) (*entity.RepairRequest, error) {
	if err := validateCreateRequest(input); err != nil {
		return nil, err
	}

	customer, err := srv.userRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "unknown customer")
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	now := time.Now()
	request := &entity.RepairRequest{
		ID:                uuid.New(),
		CustomerID:        customer.ID,
		CustomerName:      customer.FullName,
		CustomerPhone:     customer.Phone,
		ApplianceType:     input.ApplianceType,
		Brand:             input.Brand,
		IssueDescription:  input.IssueDescription,
		Address:           input.Address,
		PreferredDateTime: input.PreferredDateTime,
		Status:            entity.RequestPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := srv.requestRepo.Create(ctx, request); err != nil {
		return nil, errors.Wrap(err, "failed to create repair request")
	}

	srv.log(ctx).Info("Repair request created", slog.Any("requestID", request.ID), slog.Any("customerID", customer.ID))

	return request, nil
}

func validateCreateRequest(input *usecase.CreateRequestInput) error {
	if !input.ApplianceType.IsValid() {
		return errors.Wrap(domainerrors.ErrValidationFailed, "unknown appliance type")
	}
	if strings.TrimSpace(input.Brand) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "brand is required")
	}
	if strings.TrimSpace(input.IssueDescription) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "issue description is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "address is required")
	}
	if input.PreferredDateTime.Before(time.Now()) {
		return errors.Wrap(domainerrors.ErrValidationFailed, "preferred date must not be in the past")
	}

	return nil
}

// AssignShop accepts a pending request on behalf of a shop. The acceptance
// and the spawned delivery task share one transaction so a request can never
// be accepted without its delivery.
func (srv *requestService) AssignShop(ctx context.Context, requestID, shopID uuid.UUID) (*entity.RepairRequest, error) {
	var assigned *entity.RepairRequest

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shop, err := repoFactory.NewShopRepository().FindByID(ctx, shopID)
		if err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return errors.Wrap(domainerrors.ErrShopNotFound, "failed to assign shop")
			}

			return errors.Wrap(err, "failed to find shop")
		}

		assigned, err = repoFactory.NewRequestRepository().Assign(ctx, requestID, shop.ID, shop.Name)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrRequestNotFound):
				return errors.Wrap(domainerrors.ErrRequestNotFound, "failed to assign shop")
			case errors.Is(err, repository.ErrRequestAlreadyAssigned):
				return errors.Wrap(domainerrors.ErrRequestAlreadyAssigned, "failed to assign shop")
			}

			return errors.Wrap(err, "failed to assign request")
		}

		now := time.Now()
		delivery := &entity.Delivery{
			ID:          uuid.New(),
			RequestID:   assigned.ID,
			Status:      entity.DeliveryPending,
			DeliveryFee: defaultDeliveryFee,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := repoFactory.NewDeliveryRepository().Create(ctx, delivery); err != nil {
			return errors.Wrap(err, "failed to spawn delivery for accepted request")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to assign shop", slog.Any("requestID", requestID), slog.Any("shopID", shopID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute assign transaction")
	}

	srv.log(ctx).Info("Request accepted by shop", slog.Any("requestID", requestID), slog.Any("shopID", shopID))
	srv.announceTransition(ctx, assigned, entity.RequestPending)

	return assigned, nil
}

// AdvanceStatus moves the request one legal step along its lifecycle.
func (srv *requestService) AdvanceStatus(ctx context.Context, requestID uuid.UUID, next entity.RequestStatus) (*entity.RepairRequest, error) {
	if !next.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown request status")
	}

	current, err := srv.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRequestNotFound, "failed to advance request")
		}

		return nil, errors.Wrap(err, "failed to find request")
	}
	from := current.Status

	updated, err := srv.requestRepo.Transition(ctx, requestID, next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return nil, errors.Wrap(domainerrors.ErrRequestNotFound, "failed to advance request")
		case errors.Is(err, repository.ErrIllegalTransition):
			srv.log(ctx).Warn("Rejected illegal request transition",
				slog.Any("requestID", requestID),
				slog.String("from", from.String()),
				slog.String("to", next.String()))

			return nil, errors.Wrap(domainerrors.ErrInvalidTransition, "failed to advance request")
		}

		return nil, errors.Wrap(err, "failed to transition request")
	}

	srv.log(ctx).Info("Request status advanced",
		slog.Any("requestID", requestID),
		slog.String("from", from.String()),
		slog.String("to", updated.Status.String()))
	srv.announceTransition(ctx, updated, from)

	return updated, nil
}

// Cancel moves any non-terminal request to cancelled.
func (srv *requestService) Cancel(ctx context.Context, requestID uuid.UUID) (*entity.RepairRequest, error) {
	return srv.AdvanceStatus(ctx, requestID, entity.RequestCancelled)
}

func (srv *requestService) GetRequest(ctx context.Context, requestID uuid.UUID) (*entity.RepairRequest, error) {
	request, err := srv.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRequestNotFound, "failed to load request")
		}

		return nil, errors.Wrap(err, "failed to find request")
	}

	return request, nil
}

func (srv *requestService) ListCustomerRequests(ctx context.Context, customerID uuid.UUID) ([]*entity.RepairRequest, error) {
	requests, err := srv.requestRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer requests")
	}

	return requests, nil
}

func (srv *requestService) ListShopRequests(ctx context.Context, shopID uuid.UUID) ([]*entity.RepairRequest, error) {
	requests, err := srv.requestRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shop requests")
	}

	return requests, nil
}

func (srv *requestService) ListPendingRequests(ctx context.Context) ([]*entity.RepairRequest, error) {
	requests, err := srv.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending requests")
	}

	return requests, nil
}

func (srv *requestService) ListAllRequests(ctx context.Context) ([]*entity.RepairRequest, error) {
	requests, err := srv.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list requests")
	}

	return requests, nil
}

// announceTransition publishes the status event and best-effort notifies the
// customer's device. Neither failure mode fails the command.
func (srv *requestService) announceTransition(ctx context.Context, request *entity.RepairRequest, from entity.RequestStatus) {
	event := &service.RequestStatusEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		RepairID:   request.ID.String(),
		CustomerID: request.CustomerID.String(),
		FromStatus: from.String(),
		ToStatus:   request.Status.String(),
		OccurredAt: time.Now().Format(time.RFC3339),
	}
	if request.AssignedShopID != nil {
		event.ShopID = request.AssignedShopID.String()
	}

	if err := srv.publisher.PublishStatusEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish status event", slog.Any("requestID", request.ID), slog.Any("error", err))
	}

	srv.notifyCustomer(ctx, request)
}

func (srv *requestService) notifyCustomer(ctx context.Context, request *entity.RepairRequest) {
	if srv.notifier == nil {
		return
	}

	customer, err := srv.userRepo.FindByID(ctx, request.CustomerID)
	if err != nil || customer.FCMToken == "" {
		return
	}

	data := map[string]string{
		"request_id": request.ID.String(),
		"status":     request.Status.String(),
	}
	if err := srv.notifier.SendSingleNotification(ctx, customer.FCMToken,
		"維修進度更新", "您的維修請求狀態已更新為 "+request.Status.String(), data); err != nil {
		srv.log(ctx).Warn("Failed to push status notification", slog.Any("requestID", request.ID), slog.Any("error", err))
	}
}
