package memory

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"servease/config"
	"servease/internal/domain/entity"
	"servease/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(nil, slog.Default())
	require.NoError(t, err)

	return store
}

func seedRequest(t *testing.T, store *Store, status entity.RequestStatus) *entity.RepairRequest {
	t.Helper()

	now := time.Now()
	request := &entity.RepairRequest{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Alice Chen",
		ApplianceType: entity.ApplianceRefrigerator,
		Brand:         "LG",
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, NewRequestRepository(store).Create(context.Background(), request))

	return request
}

func TestRequestTransition_RejectsIllegalEdgeAndLeavesRecordUnchanged(t *testing.T) {
	store := newTestStore(t)
	repo := NewRequestRepository(store)
	ctx := context.Background()

	request := seedRequest(t, store, entity.RequestPending)

	_, err := repo.Transition(ctx, request.ID, entity.RequestInRepair)
	require.ErrorIs(t, err, repository.ErrIllegalTransition)

	unchanged, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, unchanged.Status)
	assert.Equal(t, request.UpdatedAt.Unix(), unchanged.UpdatedAt.Unix())
}

func TestRequestTransition_FollowsSuccessorTable(t *testing.T) {
	store := newTestStore(t)
	repo := NewRequestRepository(store)
	ctx := context.Background()

	request := seedRequest(t, store, entity.RequestAccepted)

	updated, err := repo.Transition(ctx, request.ID, entity.RequestInRepair)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestInRepair, updated.Status)

	updated, err = repo.Transition(ctx, request.ID, entity.RequestCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestCancelled, updated.Status)

	_, err = repo.Transition(ctx, request.ID, entity.RequestRepaired)
	require.ErrorIs(t, err, repository.ErrIllegalTransition)
}

func TestAssign_OnlyFromPending(t *testing.T) {
	store := newTestStore(t)
	repo := NewRequestRepository(store)
	ctx := context.Background()

	request := seedRequest(t, store, entity.RequestPending)
	shopID := uuid.New()

	assigned, err := repo.Assign(ctx, request.ID, shopID, "ElectroFix Pro")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestAccepted, assigned.Status)
	require.NotNil(t, assigned.AssignedShopID)
	assert.Equal(t, shopID, *assigned.AssignedShopID)

	_, err = repo.Assign(ctx, request.ID, uuid.New(), "ApplianceMasters")
	require.ErrorIs(t, err, repository.ErrRequestAlreadyAssigned)

	// The losing shop must not overwrite the winner.
	current, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, shopID, *current.AssignedShopID)
}

func TestAssign_UnknownRequest(t *testing.T) {
	store := newTestStore(t)

	_, err := NewRequestRepository(store).Assign(context.Background(), uuid.New(), uuid.New(), "ElectroFix Pro")
	require.ErrorIs(t, err, repository.ErrRequestNotFound)
}

func TestTransitionFrom_SkipsWhenNotInExpectedState(t *testing.T) {
	store := newTestStore(t)
	repo := NewRequestRepository(store)
	ctx := context.Background()

	request := seedRequest(t, store, entity.RequestAccepted)

	applied, err := repo.TransitionFrom(ctx, request.ID, entity.RequestRepaired, entity.RequestPickupScheduled)
	require.NoError(t, err)
	assert.False(t, applied)

	current, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestAccepted, current.Status)
}

func TestUserCreate_DuplicateEmailDoesNotMutateCollection(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	first := &entity.User{ID: uuid.New(), Email: "alice@example.com", Role: entity.RoleCustomer}
	require.NoError(t, repo.Create(ctx, first))

	// Same email under a different role still collides.
	second := &entity.User{ID: uuid.New(), Email: "alice@example.com", Role: entity.RoleServiceProvider}
	require.ErrorIs(t, repo.Create(ctx, second), repository.ErrDuplicateIdentity)

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, first.ID, users[0].ID)
}

func TestDeliveryTransition_PickupStampsTimeOnce(t *testing.T) {
	store := newTestStore(t)
	repo := NewDeliveryRepository(store)
	ctx := context.Background()

	delivery := &entity.Delivery{
		ID:        uuid.New(),
		RequestID: uuid.New(),
		Status:    entity.DeliveryPickupScheduled,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, delivery))

	updated, err := repo.Transition(ctx, delivery.ID, entity.DeliveryPickedUp)
	require.NoError(t, err)
	require.NotNil(t, updated.PickupTime)

	_, err = repo.Transition(ctx, delivery.ID, entity.DeliveryPickedUp)
	require.ErrorIs(t, err, repository.ErrIllegalTransition)
}

func TestDeliveryAccept_SecondPartnerRejected(t *testing.T) {
	store := newTestStore(t)
	repo := NewDeliveryRepository(store)
	ctx := context.Background()

	delivery := &entity.Delivery{
		ID:        uuid.New(),
		RequestID: uuid.New(),
		Status:    entity.DeliveryPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, delivery))

	winner := uuid.New()
	accepted, err := repo.Accept(ctx, delivery.ID, winner, "Dana Wu")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryPickupScheduled, accepted.Status)

	_, err = repo.Accept(ctx, delivery.ID, uuid.New(), "Eve Lin")
	require.ErrorIs(t, err, repository.ErrDeliveryAlreadyAccepted)

	current, err := repo.FindByID(ctx, delivery.ID)
	require.NoError(t, err)
	require.NotNil(t, current.AssignedPartnerID)
	assert.Equal(t, winner, *current.AssignedPartnerID)
}

func TestPaymentTransition_PaidStampsDateAndRefundFollows(t *testing.T) {
	store := newTestStore(t)
	repo := NewPaymentRepository(store)
	ctx := context.Background()

	payment := &entity.Payment{
		ID:        uuid.New(),
		RequestID: uuid.New(),
		Amount:    120,
		Status:    entity.PaymentPending,
		Method:    entity.PaymentMethodCreditCard,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, payment))

	paid, err := repo.Transition(ctx, payment.ID, entity.PaymentPaid)
	require.NoError(t, err)
	require.NotNil(t, paid.PaymentDate)

	_, err = repo.Transition(ctx, payment.ID, entity.PaymentFailed)
	require.ErrorIs(t, err, repository.ErrIllegalTransition)

	refunded, err := repo.Transition(ctx, payment.ID, entity.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, refunded.Status)
}

func TestReadsReturnCopies(t *testing.T) {
	store := newTestStore(t)
	repo := NewRequestRepository(store)
	ctx := context.Background()

	request := seedRequest(t, store, entity.RequestPending)

	got, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	got.Status = entity.RequestCompleted // caller-side mutation must not leak

	current, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, current.Status)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servease.json")
	cfg := &config.Config{Store: &config.StoreConfig{Driver: "memory", SnapshotPath: path}}
	ctx := context.Background()

	store, err := NewStore(cfg, slog.Default())
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		FullName:     "Alice Chen",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         entity.RoleCustomer,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, NewUserRepository(store).Create(ctx, user))
	request := seedRequest(t, store, entity.RequestPending)

	reloaded, err := NewStore(cfg, slog.Default())
	require.NoError(t, err)

	gotUser, err := NewUserRepository(reloaded).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, gotUser.Email)
	assert.Equal(t, user.PasswordHash, gotUser.PasswordHash, "password hash survives the snapshot")

	gotRequest, err := NewRequestRepository(reloaded).FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, gotRequest.Status)
}
