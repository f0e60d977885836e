package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"servease/internal/delivery/http/response"
	"servease/internal/usecase"
)

// ShopHandler holds dependencies for repair-shop handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the shop directory. When lat and lng query parameters are
// present the shops come back ordered by distance instead of name.
func (h *ShopHandler) List(c echo.Context) error {
	latParam := c.QueryParam("lat")
	lngParam := c.QueryParam("lng")

	if latParam != "" && lngParam != "" {
		lat, err := strconv.ParseFloat(latParam, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid latitude")
		}
		lng, err := strconv.ParseFloat(lngParam, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid longitude")
		}

		shops, err := h.uc.ListShopsNear(c.Request().Context(), lat, lng)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, shops, "Repair shops retrieved successfully")
	}

	shops, err := h.uc.ListShops(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "Repair shops retrieved successfully")
}

// Get returns a single repair shop by ID.
func (h *ShopHandler) Get(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid shop ID")
	}

	shop, err := h.uc.GetShop(c.Request().Context(), shopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "Repair shop retrieved successfully")
}
