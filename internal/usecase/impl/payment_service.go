package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/domain/repository"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	requestRepo repository.RequestRepository
	logger      *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	PaymentRepo repository.PaymentRepository
	RequestRepo repository.RequestRepository
	Logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		paymentRepo: params.PaymentRepo,
		requestRepo: params.RequestRepo,
		logger:      params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePayment opens a pending payment for a request with a generated
// transaction ID. No gateway is called; outcomes arrive via
// UpdatePaymentStatus.
func (srv *paymentService) CreatePayment(ctx context.Context, input *usecase.CreatePaymentInput) (*entity.Payment, error) {
	if !input.Method.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment method")
	}
	if input.Amount <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "amount must be positive")
	}

	if _, err := srv.requestRepo.FindByID(ctx, input.RequestID); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRequestNotFound, "failed to create payment")
		}

		return nil, errors.Wrap(err, "failed to find request")
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:            uuid.New(),
		RequestID:     input.RequestID,
		Amount:        input.Amount,
		Status:        entity.PaymentPending,
		Method:        input.Method,
		TransactionID: "TXN-" + uuid.New().String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to create payment")
	}

	srv.log(ctx).Info("Payment created", slog.Any("paymentID", payment.ID), slog.Any("requestID", payment.RequestID))

	return payment, nil
}

// UpdatePaymentStatus applies an externally observed payment outcome.
func (srv *paymentService) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, next entity.PaymentStatus) (*entity.Payment, error) {
	if !next.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment status")
	}

	updated, err := srv.paymentRepo.Transition(ctx, paymentID, next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPaymentNotFound):
			return nil, errors.Wrap(domainerrors.ErrPaymentNotFound, "failed to update payment")
		case errors.Is(err, repository.ErrIllegalTransition):
			return nil, errors.Wrap(domainerrors.ErrInvalidTransition, "failed to update payment")
		}

		return nil, errors.Wrap(err, "failed to transition payment")
	}

	srv.log(ctx).Info("Payment status updated", slog.Any("paymentID", paymentID), slog.String("to", next.String()))

	return updated, nil
}

func (srv *paymentService) GetPaymentForRequest(ctx context.Context, requestID uuid.UUID) (*entity.Payment, error) {
	payment, err := srv.paymentRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPaymentNotFound, "no payment for request")
		}

		return nil, errors.Wrap(err, "failed to find payment by request")
	}

	return payment, nil
}

func (srv *paymentService) ListPayments(ctx context.Context) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return payments, nil
}
