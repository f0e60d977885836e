package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/delivery/http/response"
	"servease/internal/domain/entity"
	"servease/internal/usecase"
)

// SupportHandler holds dependencies for complaint and support-ticket handlers.
type SupportHandler struct {
	uc     usecase.SupportUsecase
	logger *slog.Logger
}

// NewSupportHandler is the constructor for SupportHandler, injected by Fx.
func NewSupportHandler(uc usecase.SupportUsecase, logger *slog.Logger) *SupportHandler {
	return &SupportHandler{
		uc:     uc,
		logger: logger,
	}
}

type createComplaintRequest struct {
	Type    string `json:"type" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type createTicketRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type respondRequest struct {
	Response string `json:"response" validate:"required"`
}

// CreateComplaint files a complaint for the authenticated user.
func (h *SupportHandler) CreateComplaint(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createComplaintRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid complaint input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	complaint, err := h.uc.CreateComplaint(c.Request().Context(), &usecase.CreateComplaintInput{
		UserID:  userID,
		Type:    entity.ComplaintType(req.Type),
		Message: req.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, complaint, "Complaint filed successfully")
}

// RespondToComplaint attaches the single response to a complaint and resolves it.
func (h *SupportHandler) RespondToComplaint(c echo.Context) error {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid complaint ID")
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	complaint, err := h.uc.RespondToComplaint(c.Request().Context(), complaintID, req.Response)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, complaint, "Complaint responded successfully")
}

// ListComplaints returns every complaint on the platform.
func (h *SupportHandler) ListComplaints(c echo.Context) error {
	complaints, err := h.uc.ListComplaints(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, complaints, "Complaints retrieved successfully")
}

// ListMyComplaints returns the authenticated user's complaints.
func (h *SupportHandler) ListMyComplaints(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	complaints, err := h.uc.ListUserComplaints(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, complaints, "Complaints retrieved successfully")
}

// CreateTicket opens a support ticket for the authenticated user.
func (h *SupportHandler) CreateTicket(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ticket input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ticket, err := h.uc.CreateSupportTicket(c.Request().Context(), &usecase.CreateTicketInput{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, ticket, "Support ticket opened successfully")
}

// RespondToTicket attaches the single response to a ticket and resolves it.
func (h *SupportHandler) RespondToTicket(c echo.Context) error {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid ticket ID")
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ticket, err := h.uc.RespondToSupportTicket(c.Request().Context(), ticketID, req.Response)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ticket, "Support ticket responded successfully")
}

// ListTickets returns every support ticket on the platform.
func (h *SupportHandler) ListTickets(c echo.Context) error {
	tickets, err := h.uc.ListTickets(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tickets, "Support tickets retrieved successfully")
}

// ListMyTickets returns the authenticated user's support tickets.
func (h *SupportHandler) ListMyTickets(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	tickets, err := h.uc.ListUserTickets(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tickets, "Support tickets retrieved successfully")
}
