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

// AdminHandler holds dependencies for platform administration handlers.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	statsUC usecase.StatsUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(adminUC usecase.AdminUsecase, statsUC usecase.StatsUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		statsUC: statsUC,
		logger:  logger,
	}
}

// ListUsers returns the user directory, optionally filtered by role.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := c.QueryParam("role")

	var (
		users []*entity.User
		err   error
	)
	if role != "" {
		users, err = h.adminUC.ListUsersByRole(c.Request().Context(), entity.Role(role))
	} else {
		users, err = h.adminUC.ListUsers(c.Request().Context())
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// DeleteUser removes a user account permanently.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	if err := h.adminUC.DeleteUser(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "deleted"}, "User deleted successfully")
}

// PlatformStats returns the aggregated platform dashboard counters.
func (h *AdminHandler) PlatformStats(c echo.Context) error {
	stats, err := h.statsUC.PlatformStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Platform statistics retrieved successfully")
}
