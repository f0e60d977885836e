package impl

import (
	"context"
	"strings"
	"testing"

	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_CreatePayment_Success(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	payment, err := fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: request.ID,
		Amount:    1200.50,
		Method:    entity.PaymentMethodCreditCard,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN-"))
	assert.Nil(t, payment.PaymentDate)
}

func TestPaymentService_CreatePayment_Validation(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	_, err := fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: request.ID,
		Amount:    0,
		Method:    entity.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: request.ID,
		Amount:    100,
		Method:    entity.PaymentMethod("bitcoin"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestPaymentService_CreatePayment_UnknownRequest(t *testing.T) {
	fx := newFixtures(t)

	_, err := fx.payments.CreatePayment(context.Background(), &usecase.CreatePaymentInput{
		RequestID: uuid.New(),
		Amount:    100,
		Method:    entity.PaymentMethodCash,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRequestNotFound))
}

func TestPaymentService_UpdatePaymentStatus_PaidThenRefunded(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	payment, err := fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: request.ID,
		Amount:    500,
		Method:    entity.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)

	paid, err := fx.payments.UpdatePaymentStatus(ctx, payment.ID, entity.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)

	refunded, err := fx.payments.UpdatePaymentStatus(ctx, payment.ID, entity.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, refunded.Status)
}

func TestPaymentService_UpdatePaymentStatus_IllegalEdge(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	payment, err := fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: request.ID,
		Amount:    500,
		Method:    entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	// A pending payment cannot be refunded before it is paid.
	_, err = fx.payments.UpdatePaymentStatus(ctx, payment.ID, entity.PaymentRefunded)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestPaymentService_GetPaymentForRequest(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	_, err := fx.payments.GetPaymentForRequest(ctx, request.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentNotFound))

	created, err := fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: request.ID,
		Amount:    750,
		Method:    entity.PaymentMethodDebitCard,
	})
	require.NoError(t, err)

	found, err := fx.payments.GetPaymentForRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}
