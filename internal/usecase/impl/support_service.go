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
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// supportService implements the SupportUsecase interface.
type supportService struct {
	complaintRepo repository.ComplaintRepository
	ticketRepo    repository.TicketRepository
	userRepo      repository.UserRepository
	logger        *slog.Logger
}

// SupportServiceParams holds dependencies for SupportService, injected by Fx.
type SupportServiceParams struct {
	fx.In

	ComplaintRepo repository.ComplaintRepository
	TicketRepo    repository.TicketRepository
	UserRepo      repository.UserRepository
	Logger        *slog.Logger
}

// NewSupportService is the constructor for supportService.
func NewSupportService(params SupportServiceParams) usecase.SupportUsecase {
	return &supportService{
		complaintRepo: params.ComplaintRepo,
		ticketRepo:    params.TicketRepo,
		userRepo:      params.UserRepo,
		logger:        params.Logger,
	}
}

func (srv *supportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateComplaint files a new open complaint.
func (srv *supportService) CreateComplaint(ctx context.Context, input *usecase.CreateComplaintInput) (*entity.Complaint, error) {
	if !input.Type.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown complaint type")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "message is required")
	}

	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to create complaint")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	complaint := &entity.Complaint{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Type:      input.Type,
		Message:   input.Message,
		Status:    entity.ComplaintOpen,
		CreatedAt: time.Now(),
	}

	if err := srv.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, errors.Wrap(err, "failed to create complaint")
	}

	srv.log(ctx).Info("Complaint filed", slog.Any("complaintID", complaint.ID), slog.Any("userID", complaint.UserID))

	return complaint, nil
}

// RespondToComplaint records the single allowed response and resolves the
// complaint. The terminal check happens inside the repository, so two
// concurrent responders can never both succeed.
func (srv *supportService) RespondToComplaint(ctx context.Context, complaintID uuid.UUID, response string) (*entity.Complaint, error) {
	if strings.TrimSpace(response) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "response is required")
	}

	complaint, err := srv.complaintRepo.Respond(ctx, complaintID, response, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrComplaintNotFound):
			return nil, errors.Wrap(domainerrors.ErrComplaintNotFound, "failed to respond to complaint")
		case errors.Is(err, repository.ErrIllegalTransition):
			return nil, errors.Wrap(domainerrors.ErrInvalidTransition, "complaint already responded to")
		}

		return nil, errors.Wrap(err, "failed to respond to complaint")
	}

	srv.log(ctx).Info("Complaint resolved", slog.Any("complaintID", complaint.ID))

	return complaint, nil
}

func (srv *supportService) ListComplaints(ctx context.Context) ([]*entity.Complaint, error) {
	complaints, err := srv.complaintRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list complaints")
	}

	return complaints, nil
}

func (srv *supportService) ListUserComplaints(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error) {
	complaints, err := srv.complaintRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user complaints")
	}

	return complaints, nil
}

// CreateSupportTicket opens a new ticket with the user's contact details
// denormalized onto it.
func (srv *supportService) CreateSupportTicket(ctx context.Context, input *usecase.CreateTicketInput) (*entity.SupportTicket, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "subject is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "message is required")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to create ticket")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	ticket := &entity.SupportTicket{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserName:  user.FullName,
		UserEmail: user.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    entity.TicketOpen,
		CreatedAt: time.Now(),
	}

	if err := srv.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to create ticket")
	}

	srv.log(ctx).Info("Support ticket opened", slog.Any("ticketID", ticket.ID), slog.Any("userID", ticket.UserID))

	return ticket, nil
}

// RespondToSupportTicket records the single allowed response and resolves
// the ticket. The terminal check happens inside the repository, so two
// concurrent responders can never both succeed.
func (srv *supportService) RespondToSupportTicket(ctx context.Context, ticketID uuid.UUID, response string) (*entity.SupportTicket, error) {
	if strings.TrimSpace(response) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "response is required")
	}

	ticket, err := srv.ticketRepo.Respond(ctx, ticketID, response, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketNotFound):
			return nil, errors.Wrap(domainerrors.ErrTicketNotFound, "failed to respond to ticket")
		case errors.Is(err, repository.ErrIllegalTransition):
			return nil, errors.Wrap(domainerrors.ErrInvalidTransition, "ticket already responded to")
		}

		return nil, errors.Wrap(err, "failed to respond to ticket")
	}

	srv.log(ctx).Info("Support ticket resolved", slog.Any("ticketID", ticket.ID))

	return ticket, nil
}

func (srv *supportService) ListTickets(ctx context.Context) ([]*entity.SupportTicket, error) {
	tickets, err := srv.ticketRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tickets")
	}

	return tickets, nil
}

func (srv *supportService) ListUserTickets(ctx context.Context, userID uuid.UUID) ([]*entity.SupportTicket, error) {
	tickets, err := srv.ticketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user tickets")
	}

	return tickets, nil
}
