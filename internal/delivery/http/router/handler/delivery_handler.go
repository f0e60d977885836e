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

// DeliveryHandler holds dependencies for delivery-task handlers.
type DeliveryHandler struct {
	uc     usecase.DeliveryUsecase
	logger *slog.Logger
}

// NewDeliveryHandler is the constructor for DeliveryHandler, injected by Fx.
func NewDeliveryHandler(uc usecase.DeliveryUsecase, logger *slog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		uc:     uc,
		logger: logger,
	}
}

type advanceDeliveryRequest struct {
	Status string `json:"status" validate:"required"`
}

// Accept claims an unassigned delivery for the authenticated partner.
func (h *DeliveryHandler) Accept(c echo.Context) error {
	partnerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid delivery ID")
	}

	delivery, err := h.uc.AcceptDelivery(c.Request().Context(), deliveryID, partnerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery accepted successfully")
}

// Advance moves the delivery along one lifecycle edge.
func (h *DeliveryHandler) Advance(c echo.Context) error {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid delivery ID")
	}

	var req advanceDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	delivery, err := h.uc.AdvanceDelivery(c.Request().Context(), deliveryID, entity.DeliveryStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery status updated successfully")
}

// Get returns a single delivery by ID.
func (h *DeliveryHandler) Get(c echo.Context) error {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid delivery ID")
	}

	delivery, err := h.uc.GetDelivery(c.Request().Context(), deliveryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery retrieved successfully")
}

// GetForRequest returns the delivery spawned for a repair request.
func (h *DeliveryHandler) GetForRequest(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	delivery, err := h.uc.GetDeliveryForRequest(c.Request().Context(), requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery retrieved successfully")
}

// ListMine returns the authenticated partner's deliveries, newest first.
func (h *DeliveryHandler) ListMine(c echo.Context) error {
	partnerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	deliveries, err := h.uc.ListPartnerDeliveries(c.Request().Context(), partnerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, deliveries, "Deliveries retrieved successfully")
}

// ListUnassigned returns the deliveries no partner has accepted yet.
func (h *DeliveryHandler) ListUnassigned(c echo.Context) error {
	deliveries, err := h.uc.ListUnassignedDeliveries(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, deliveries, "Deliveries retrieved successfully")
}

// PickupQR returns the PNG QR code the partner shows at the shop.
func (h *DeliveryHandler) PickupQR(c echo.Context) error {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid delivery ID")
	}

	png, err := h.uc.PickupQR(c.Request().Context(), deliveryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
