package impl

import (
	"context"
	"testing"

	"servease/internal/domain/entity"
	"servease/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_PlatformStats(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	customer := fx.createUser(t, entity.RoleCustomer)
	fx.createUser(t, entity.RoleCustomer)
	fx.createUser(t, entity.RoleServiceProvider)
	fx.createUser(t, entity.RoleDeliveryPartner)
	fx.createUser(t, entity.RoleAdmin)

	pending := fx.createPendingRequest(t, customer)
	cancelled := fx.createPendingRequest(t, customer)
	_, err := fx.requests.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	paid, err := fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: pending.ID,
		Amount:    300,
		Method:    entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	_, err = fx.payments.UpdatePaymentStatus(ctx, paid.ID, entity.PaymentPaid)
	require.NoError(t, err)

	_, err = fx.payments.CreatePayment(ctx, &usecase.CreatePaymentInput{
		RequestID: cancelled.ID,
		Amount:    999,
		Method:    entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	stats, err := fx.stats.PlatformStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, 1, stats.TotalServiceProviders)
	assert.Equal(t, 1, stats.TotalDeliveryPartners)
	assert.Equal(t, 2, stats.TotalRequests)
	assert.Equal(t, 1, stats.PendingRequests)
	assert.Equal(t, 1, stats.ActiveRequests)
	assert.Equal(t, 0, stats.CompletedRequests)
	// Only the paid payment counts toward earnings.
	assert.InDelta(t, 300, stats.TotalEarnings, 0.001)
}
