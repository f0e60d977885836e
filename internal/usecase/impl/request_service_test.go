package impl

import (
	"context"
	"testing"
	"time"

	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestService_CreateRequest_Success(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)

	request, err := fx.requests.CreateRequest(ctx, &usecase.CreateRequestInput{
		CustomerID:        customer.ID,
		ApplianceType:     entity.ApplianceWashingMachine,
		Brand:             "SpinCo",
		IssueDescription:  "drum does not spin",
		Address:           "5 Elm St",
		PreferredDateTime: time.Now().Add(48 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, request.Status)
	assert.Nil(t, request.AssignedShopID)
	assert.Equal(t, customer.FullName, request.CustomerName)
	assert.Equal(t, customer.Phone, request.CustomerPhone)
	assert.True(t, request.CreatedAt.Equal(request.UpdatedAt))
}

func TestRequestService_CreateRequest_Validation(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)

	valid := func() *usecase.CreateRequestInput {
		return &usecase.CreateRequestInput{
			CustomerID:        customer.ID,
			ApplianceType:     entity.ApplianceOven,
			Brand:             "BakeCo",
			IssueDescription:  "no heat",
			Address:           "5 Elm St",
			PreferredDateTime: time.Now().Add(time.Hour),
		}
	}

	testCases := []struct {
		name   string
		mutate func(*usecase.CreateRequestInput)
	}{
		{"unknown appliance", func(in *usecase.CreateRequestInput) { in.ApplianceType = "toaster-oven" }},
		{"blank brand", func(in *usecase.CreateRequestInput) { in.Brand = "  " }},
		{"blank description", func(in *usecase.CreateRequestInput) { in.IssueDescription = "" }},
		{"blank address", func(in *usecase.CreateRequestInput) { in.Address = "" }},
		{"past preferred date", func(in *usecase.CreateRequestInput) { in.PreferredDateTime = time.Now().Add(-time.Hour) }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			input := valid()
			testCase.mutate(input)

			_, err := fx.requests.CreateRequest(ctx, input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestRequestService_CreateRequest_UnknownCustomer(t *testing.T) {
	fx := newFixtures(t)

	_, err := fx.requests.CreateRequest(context.Background(), &usecase.CreateRequestInput{
		CustomerID:        uuid.New(),
		ApplianceType:     entity.ApplianceOven,
		Brand:             "BakeCo",
		IssueDescription:  "no heat",
		Address:           "5 Elm St",
		PreferredDateTime: time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestRequestService_AssignShop_SpawnsDelivery(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)
	shop := fx.createShop(t)

	assigned, err := fx.requests.AssignShop(ctx, request.ID, shop.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.RequestAccepted, assigned.Status)
	require.NotNil(t, assigned.AssignedShopID)
	assert.Equal(t, shop.ID, *assigned.AssignedShopID)
	require.NotNil(t, assigned.AssignedShopName)
	assert.Equal(t, shop.Name, *assigned.AssignedShopName)

	delivery, err := fx.delivery.GetDeliveryForRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryPending, delivery.Status)
	assert.Nil(t, delivery.AssignedPartnerID)
	assert.InDelta(t, 25.00, delivery.DeliveryFee, 0.001)

	events := fx.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, request.ID.String(), events[0].RepairID)
	assert.Equal(t, entity.RequestPending.String(), events[0].FromStatus)
	assert.Equal(t, entity.RequestAccepted.String(), events[0].ToStatus)
	assert.Equal(t, shop.ID.String(), events[0].ShopID)
}

func TestRequestService_AssignShop_AlreadyAssigned(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)
	first := fx.createShop(t)
	second := fx.createShop(t)

	_, err := fx.requests.AssignShop(ctx, request.ID, first.ID)
	require.NoError(t, err)

	_, err = fx.requests.AssignShop(ctx, request.ID, second.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRequestAlreadyAssigned))
}

func TestRequestService_AssignShop_UnknownShop(t *testing.T) {
	fx := newFixtures(t)
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	_, err := fx.requests.AssignShop(context.Background(), request.ID, uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShopNotFound))
}

func TestRequestService_AdvanceStatus_LegalStep(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	assigned, _ := fx.createAssignedRequest(t, customer)

	updated, err := fx.requests.AdvanceStatus(ctx, assigned.ID, entity.RequestInRepair)

	require.NoError(t, err)
	assert.Equal(t, entity.RequestInRepair, updated.Status)
}

func TestRequestService_AdvanceStatus_IllegalJump(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	// pending may not jump straight to repaired.
	_, err := fx.requests.AdvanceStatus(ctx, request.ID, entity.RequestRepaired)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestRequestService_Cancel(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	request := fx.createPendingRequest(t, customer)

	cancelled, err := fx.requests.Cancel(ctx, request.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.RequestCancelled, cancelled.Status)

	// A cancelled request is terminal, cancelling again is illegal.
	_, err = fx.requests.Cancel(ctx, request.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestRequestService_AdvanceStatus_NotifiesCustomerDevice(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)

	require.NoError(t, fx.identity.RegisterDeviceToken(ctx, &usecase.RegisterDeviceTokenInput{
		UserID:   customer.ID,
		FCMToken: "fcm-abc",
	}))

	assigned, _ := fx.createAssignedRequest(t, customer)
	_, err := fx.requests.AdvanceStatus(ctx, assigned.ID, entity.RequestInRepair)
	require.NoError(t, err)

	tokens := fx.notifier.Tokens()
	require.NotEmpty(t, tokens)
	assert.Equal(t, "fcm-abc", tokens[len(tokens)-1])
}

func TestRequestService_Listings(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	other := fx.createUser(t, entity.RoleCustomer)

	fx.createPendingRequest(t, customer)
	fx.createPendingRequest(t, customer)
	fx.createPendingRequest(t, other)

	mine, err := fx.requests.ListCustomerRequests(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := fx.requests.ListPendingRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	all, err := fx.requests.ListAllRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
