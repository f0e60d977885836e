package usecase

import (
	"context"

	"servease/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreatePaymentInput defines the data required to open a payment for a request.
type CreatePaymentInput struct {
	RequestID uuid.UUID
	Amount    float64
	Method    entity.PaymentMethod
}

// PaymentUsecase defines the interface for payment operations. Status changes
// are driven externally; no gateway integration happens here.
type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error)

	// UpdatePaymentStatus applies an externally observed outcome. Reaching
	// paid stamps the payment date.
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, next entity.PaymentStatus) (*entity.Payment, error)

	GetPaymentForRequest(ctx context.Context, requestID uuid.UUID) (*entity.Payment, error)
	ListPayments(ctx context.Context) ([]*entity.Payment, error)
}
