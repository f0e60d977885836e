package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"servease/internal/delivery/http/response"
	"servease/internal/domain/entity"
	"servease/internal/usecase"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

type createPaymentRequest struct {
	RequestID uuid.UUID `json:"request_id" validate:"required"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
	Method    string    `json:"method" validate:"required"`
}

type updatePaymentRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create opens a payment record for a repair request.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.uc.CreatePayment(c.Request().Context(), &usecase.CreatePaymentInput{
		RequestID: req.RequestID,
		Amount:    req.Amount,
		Method:    entity.PaymentMethod(req.Method),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, payment, "Payment created successfully")
}

// UpdateStatus applies an externally observed payment outcome.
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid payment ID")
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.uc.UpdatePaymentStatus(c.Request().Context(), paymentID, entity.PaymentStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payment, "Payment status updated successfully")
}

// GetForRequest returns the payment tied to a repair request.
func (h *PaymentHandler) GetForRequest(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	payment, err := h.uc.GetPaymentForRequest(c.Request().Context(), requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payment, "Payment retrieved successfully")
}

// ListAll returns every payment on the platform.
func (h *PaymentHandler) ListAll(c echo.Context) error {
	payments, err := h.uc.ListPayments(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payments, "Payments retrieved successfully")
}
