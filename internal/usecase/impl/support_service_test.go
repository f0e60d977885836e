package impl

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportService_CreateComplaint_Success(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	user := fx.createUser(t, entity.RoleCustomer)

	complaint, err := fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
		UserID:  user.ID,
		Type:    entity.ComplaintTypeDelivery,
		Message: "courier never arrived",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintOpen, complaint.Status)
	assert.Nil(t, complaint.Response)
	assert.Nil(t, complaint.RespondedAt)
}

func TestSupportService_CreateComplaint_Validation(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	user := fx.createUser(t, entity.RoleCustomer)

	_, err := fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
		UserID:  user.ID,
		Type:    entity.ComplaintType("vibes"),
		Message: "something",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
		UserID:  user.ID,
		Type:    entity.ComplaintTypeService,
		Message: "   ",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
		UserID:  uuid.New(),
		Type:    entity.ComplaintTypeService,
		Message: "something",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestSupportService_RespondToComplaint_OnceOnly(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	user := fx.createUser(t, entity.RoleCustomer)

	complaint, err := fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
		UserID:  user.ID,
		Type:    entity.ComplaintTypePayment,
		Message: "charged twice",
	})
	require.NoError(t, err)

	resolved, err := fx.support.RespondToComplaint(ctx, complaint.ID, "refund issued")
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintResolved, resolved.Status)
	require.NotNil(t, resolved.Response)
	assert.Equal(t, "refund issued", *resolved.Response)
	require.NotNil(t, resolved.RespondedAt)

	// A resolved complaint accepts no further responses.
	_, err = fx.support.RespondToComplaint(ctx, complaint.ID, "another response")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestSupportService_RespondToComplaint_ConcurrentRespondersSingleWinner(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	user := fx.createUser(t, entity.RoleCustomer)

	complaint, err := fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
		UserID:  user.ID,
		Type:    entity.ComplaintTypeService,
		Message: "late arrival",
	})
	require.NoError(t, err)

	const responders = 8
	var (
		start     sync.WaitGroup
		done      sync.WaitGroup
		successes atomic.Int32
	)
	start.Add(1)
	for i := range responders {
		done.Add(1)
		response := "response from responder " + strconv.Itoa(i)
		go func() {
			defer done.Done()
			start.Wait()
			if _, err := fx.support.RespondToComplaint(ctx, complaint.ID, response); err == nil {
				successes.Add(1)
			}
		}()
	}
	start.Done()
	done.Wait()

	// Exactly one responder may win; the rest hit the terminal check.
	assert.Equal(t, int32(1), successes.Load())

	resolved, err := fx.support.ListUserComplaints(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, entity.ComplaintResolved, resolved[0].Status)
	require.NotNil(t, resolved[0].Response)
}

func TestSupportService_RespondToSupportTicket_ConcurrentRespondersSingleWinner(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	user := fx.createUser(t, entity.RoleCustomer)

	ticket, err := fx.support.CreateSupportTicket(ctx, &usecase.CreateTicketInput{
		UserID:  user.ID,
		Subject: "invoice copy",
		Message: "please resend my invoice",
	})
	require.NoError(t, err)

	const responders = 8
	var (
		start     sync.WaitGroup
		done      sync.WaitGroup
		successes atomic.Int32
	)
	start.Add(1)
	for i := range responders {
		done.Add(1)
		response := "response from responder " + strconv.Itoa(i)
		go func() {
			defer done.Done()
			start.Wait()
			if _, err := fx.support.RespondToSupportTicket(ctx, ticket.ID, response); err == nil {
				successes.Add(1)
			}
		}()
	}
	start.Done()
	done.Wait()

	assert.Equal(t, int32(1), successes.Load())

	tickets, err := fx.support.ListUserTickets(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, entity.TicketResolved, tickets[0].Status)
	require.NotNil(t, tickets[0].Response)
}

func TestSupportService_Tickets(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	user := fx.createUser(t, entity.RoleServiceProvider)

	ticket, err := fx.support.CreateSupportTicket(ctx, &usecase.CreateTicketInput{
		UserID:  user.ID,
		Subject: "payout schedule",
		Message: "when are payouts processed?",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TicketOpen, ticket.Status)
	assert.Equal(t, user.FullName, ticket.UserName)
	assert.Equal(t, user.Email, ticket.UserEmail)

	resolved, err := fx.support.RespondToSupportTicket(ctx, ticket.ID, "weekly on Fridays")
	require.NoError(t, err)
	assert.Equal(t, entity.TicketResolved, resolved.Status)

	_, err = fx.support.RespondToSupportTicket(ctx, ticket.ID, "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestSupportService_Listings(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	alice := fx.createUser(t, entity.RoleCustomer)
	bob := fx.createUser(t, entity.RoleCustomer)

	for _, user := range []*entity.User{alice, alice, bob} {
		_, err := fx.support.CreateComplaint(ctx, &usecase.CreateComplaintInput{
			UserID:  user.ID,
			Type:    entity.ComplaintTypeOther,
			Message: "something happened",
		})
		require.NoError(t, err)
	}

	all, err := fx.support.ListComplaints(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := fx.support.ListUserComplaints(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
