package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePlatformStats(t *testing.T) {
	users := []*User{
		{Role: RoleCustomer},
		{Role: RoleCustomer},
		{Role: RoleCustomer},
		{Role: RoleServiceProvider},
		{Role: RoleServiceProvider},
	}
	requests := []*RepairRequest{
		{Status: RequestPending},
		{Status: RequestPending},
		{Status: RequestAccepted},
		{Status: RequestCompleted},
		{Status: RequestCancelled},
	}

	stats := ComputePlatformStats(users, requests, nil)

	assert.Equal(t, 5, stats.TotalUsers)
	assert.Equal(t, 3, stats.TotalCustomers)
	assert.Equal(t, 2, stats.TotalServiceProviders)
	assert.Equal(t, 0, stats.TotalDeliveryPartners)
	assert.Equal(t, 5, stats.TotalRequests)
	assert.Equal(t, 2, stats.PendingRequests)
	assert.Equal(t, 3, stats.ActiveRequests)
	assert.Equal(t, 1, stats.CompletedRequests)
}

func TestComputePlatformStats_EarningsCountPaidOnly(t *testing.T) {
	payments := []*Payment{
		{Status: PaymentRefunded, Amount: 50},
		{Status: PaymentPaid, Amount: 120},
		{Status: PaymentPending, Amount: 300},
		{Status: PaymentFailed, Amount: 80},
	}

	stats := ComputePlatformStats(nil, nil, payments)

	assert.InDelta(t, 120.0, stats.TotalEarnings, 0.0001)
}

func TestComputePlatformStats_OrderIndependent(t *testing.T) {
	requests := []*RepairRequest{
		{Status: RequestCompleted},
		{Status: RequestPending},
		{Status: RequestInRepair},
	}
	reversed := []*RepairRequest{requests[2], requests[1], requests[0]}

	assert.Equal(t, ComputePlatformStats(nil, requests, nil), ComputePlatformStats(nil, reversed, nil))
}
