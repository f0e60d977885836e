package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/delivery/http/response"
	"servease/internal/domain/entity"
	"servease/internal/usecase"
)

// RequestHandler holds dependencies for repair-request handlers.
type RequestHandler struct {
	uc     usecase.RequestUsecase
	logger *slog.Logger
}

// NewRequestHandler is the constructor for RequestHandler, injected by Fx.
func NewRequestHandler(uc usecase.RequestUsecase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		uc:     uc,
		logger: logger,
	}
}

type createRequestRequest struct {
	ApplianceType     string    `json:"appliance_type" validate:"required"`
	Brand             string    `json:"brand" validate:"required"`
	IssueDescription  string    `json:"issue_description" validate:"required"`
	Address           string    `json:"address" validate:"required"`
	PreferredDateTime time.Time `json:"preferred_date_time" validate:"required"`
}

type assignShopRequest struct {
	ShopID uuid.UUID `json:"shop_id" validate:"required"`
}

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles submission of a new repair request by the authenticated customer.
func (h *RequestHandler) Create(c echo.Context) error {
	customerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid repair request input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.uc.CreateRequest(c.Request().Context(), &usecase.CreateRequestInput{
		CustomerID:        customerID,
		ApplianceType:     entity.ApplianceType(req.ApplianceType),
		Brand:             req.Brand,
		IssueDescription:  req.IssueDescription,
		Address:           req.Address,
		PreferredDateTime: req.PreferredDateTime,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Repair request submitted successfully")
}

// Get returns a single repair request by ID.
func (h *RequestHandler) Get(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	request, err := h.uc.GetRequest(c.Request().Context(), requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Repair request retrieved successfully")
}

// ListMine returns the authenticated customer's requests, newest first.
func (h *RequestHandler) ListMine(c echo.Context) error {
	customerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	requests, err := h.uc.ListCustomerRequests(c.Request().Context(), customerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Repair requests retrieved successfully")
}

// ListPending returns the unassigned requests a shop can pick from.
func (h *RequestHandler) ListPending(c echo.Context) error {
	requests, err := h.uc.ListPendingRequests(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Pending repair requests retrieved successfully")
}

// ListByShop returns the requests assigned to the given shop.
func (h *RequestHandler) ListByShop(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid shop ID")
	}

	requests, err := h.uc.ListShopRequests(c.Request().Context(), shopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Repair requests retrieved successfully")
}

// ListAll returns every repair request on the platform.
func (h *RequestHandler) ListAll(c echo.Context) error {
	requests, err := h.uc.ListAllRequests(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Repair requests retrieved successfully")
}

// AssignShop accepts a pending request on behalf of a shop.
func (h *RequestHandler) AssignShop(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	var req assignShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.uc.AssignShop(c.Request().Context(), requestID, req.ShopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Repair request accepted successfully")
}

// AdvanceStatus moves the request along one lifecycle edge.
func (h *RequestHandler) AdvanceStatus(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	var req advanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.uc.AdvanceStatus(c.Request().Context(), requestID, entity.RequestStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Repair request status updated successfully")
}

// Cancel cancels a non-terminal request.
func (h *RequestHandler) Cancel(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	request, err := h.uc.Cancel(c.Request().Context(), requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Repair request cancelled successfully")
}
