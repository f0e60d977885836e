package impl

import (
	"context"
	"testing"

	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryService_AcceptDelivery_Success(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	partner := fx.createUser(t, entity.RoleDeliveryPartner)
	_, delivery := fx.createAssignedRequest(t, customer)

	accepted, err := fx.delivery.AcceptDelivery(ctx, delivery.ID, partner.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryPickupScheduled, accepted.Status)
	require.NotNil(t, accepted.AssignedPartnerID)
	assert.Equal(t, partner.ID, *accepted.AssignedPartnerID)
	require.NotNil(t, accepted.AssignedPartnerName)
	assert.Equal(t, partner.FullName, *accepted.AssignedPartnerName)
}

func TestDeliveryService_AcceptDelivery_NonPartnerForbidden(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	_, delivery := fx.createAssignedRequest(t, customer)

	_, err := fx.delivery.AcceptDelivery(ctx, delivery.ID, customer.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestDeliveryService_AcceptDelivery_FirstPartnerWins(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	first := fx.createUser(t, entity.RoleDeliveryPartner)
	second := fx.createUser(t, entity.RoleDeliveryPartner)
	_, delivery := fx.createAssignedRequest(t, customer)

	_, err := fx.delivery.AcceptDelivery(ctx, delivery.ID, first.ID)
	require.NoError(t, err)

	_, err = fx.delivery.AcceptDelivery(ctx, delivery.ID, second.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDeliveryAlreadyAccepted))
}

func TestDeliveryService_AdvanceDelivery_StampsPickupTime(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	partner := fx.createUser(t, entity.RoleDeliveryPartner)
	_, delivery := fx.createAssignedRequest(t, customer)

	_, err := fx.delivery.AcceptDelivery(ctx, delivery.ID, partner.ID)
	require.NoError(t, err)

	pickedUp, err := fx.delivery.AdvanceDelivery(ctx, delivery.ID, entity.DeliveryPickedUp)

	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryPickedUp, pickedUp.Status)
	require.NotNil(t, pickedUp.PickupTime)
}

func TestDeliveryService_AdvanceDelivery_IllegalJump(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	_, delivery := fx.createAssignedRequest(t, customer)

	// pending may not jump straight to delivered.
	_, err := fx.delivery.AdvanceDelivery(ctx, delivery.ID, entity.DeliveryDelivered)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestDeliveryService_ReconciliationSkippedWhenRequestNotReady(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	partner := fx.createUser(t, entity.RoleDeliveryPartner)
	assigned, delivery := fx.createAssignedRequest(t, customer)

	// The request is still accepted, not repaired; accepting the delivery
	// must not move it.
	_, err := fx.delivery.AcceptDelivery(ctx, delivery.ID, partner.ID)
	require.NoError(t, err)

	request, err := fx.requests.GetRequest(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestAccepted, request.Status)
}

func TestDeliveryService_CancelledRequestStopsMirroringDelivery(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	partner := fx.createUser(t, entity.RoleDeliveryPartner)
	assigned, delivery := fx.createAssignedRequest(t, customer)

	_, err := fx.requests.Cancel(ctx, assigned.ID)
	require.NoError(t, err)

	// The delivery machine keeps running on its own; the cancelled
	// request must not follow it anywhere.
	_, err = fx.delivery.AcceptDelivery(ctx, delivery.ID, partner.ID)
	require.NoError(t, err)
	_, err = fx.delivery.AdvanceDelivery(ctx, delivery.ID, entity.DeliveryPickedUp)
	require.NoError(t, err)

	request, err := fx.requests.GetRequest(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestCancelled, request.Status)
}

func TestDeliveryService_ReconciliationDrivesParentRequest(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	partner := fx.createUser(t, entity.RoleDeliveryPartner)
	assigned, delivery := fx.createAssignedRequest(t, customer)

	_, err := fx.requests.AdvanceStatus(ctx, assigned.ID, entity.RequestInRepair)
	require.NoError(t, err)
	_, err = fx.requests.AdvanceStatus(ctx, assigned.ID, entity.RequestRepaired)
	require.NoError(t, err)

	// Accepting the delivery schedules the pickup on the repaired request.
	_, err = fx.delivery.AcceptDelivery(ctx, delivery.ID, partner.ID)
	require.NoError(t, err)

	request, err := fx.requests.GetRequest(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPickupScheduled, request.Status)

	_, err = fx.delivery.AdvanceDelivery(ctx, delivery.ID, entity.DeliveryPickedUp)
	require.NoError(t, err)
	_, err = fx.delivery.AdvanceDelivery(ctx, delivery.ID, entity.DeliveryInTransit)
	require.NoError(t, err)

	request, err = fx.requests.GetRequest(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestInTransit, request.Status)

	_, err = fx.delivery.AdvanceDelivery(ctx, delivery.ID, entity.DeliveryDelivered)
	require.NoError(t, err)

	request, err = fx.requests.GetRequest(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestDelivered, request.Status)
}

func TestDeliveryService_ListUnassigned(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	partner := fx.createUser(t, entity.RoleDeliveryPartner)
	_, first := fx.createAssignedRequest(t, customer)
	_, second := fx.createAssignedRequest(t, customer)

	unassigned, err := fx.delivery.ListUnassignedDeliveries(ctx)
	require.NoError(t, err)
	assert.Len(t, unassigned, 2)

	_, err = fx.delivery.AcceptDelivery(ctx, first.ID, partner.ID)
	require.NoError(t, err)

	unassigned, err = fx.delivery.ListUnassignedDeliveries(ctx)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, second.ID, unassigned[0].ID)

	mine, err := fx.delivery.ListPartnerDeliveries(ctx, partner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestDeliveryService_PickupQR(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	customer := fx.createUser(t, entity.RoleCustomer)
	_, delivery := fx.createAssignedRequest(t, customer)

	png, err := fx.delivery.PickupQR(ctx, delivery.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("qr:"+delivery.ID.String()), png)
}
