package handler

import (
	"net/http"
	"strings"

	"freshfarm/internal/delivery/http/middleware"
	"freshfarm/internal/delivery/http/response"
	"freshfarm/internal/domain/entity"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for platform administration handlers.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers returns all accounts, optionally filtered by role.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var role *entity.Role
	if param := c.QueryParam("role"); param != "" {
		candidate := entity.Role(strings.ToUpper(param))
		if !candidate.IsValid() {
			return response.BadRequest(c, "INVALID_INPUT", "Unknown role: "+param)
		}
		role = &candidate
	}

	users, err := h.uc.ListUsers(c.Request().Context(), adminID, role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserViewList(users), "Users retrieved successfully")
}

// DeactivateUser marks an account inactive, blocking further logins.
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	return h.setActive(c, false, "User deactivated successfully")
}

// ReactivateUser marks an account active again.
func (h *AdminHandler) ReactivateUser(c echo.Context) error {
	return h.setActive(c, true, "User reactivated successfully")
}

func (h *AdminHandler) setActive(c echo.Context, active bool, message string) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	if active {
		err = h.uc.ReactivateUser(c.Request().Context(), adminID, targetID)
	} else {
		err = h.uc.DeactivateUser(c.Request().Context(), adminID, targetID)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, message)
}

// ListAllTransactions returns the full payment ledger, newest first.
func (h *AdminHandler) ListAllTransactions(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	txns, err := h.uc.ListAllTransactions(c.Request().Context(), adminID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txns, "Transactions retrieved successfully")
}

// GenerateReport summarises marketplace activity over a period.
func (h *AdminHandler) GenerateReport(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	period := usecase.ReportPeriod(strings.ToUpper(c.QueryParam("period")))
	if period == "" {
		period = usecase.ReportDaily
	}

	report, err := h.uc.GenerateReport(c.Request().Context(), adminID, period)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Report generated successfully")
}
