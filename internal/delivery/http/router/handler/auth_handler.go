package handler

import (
	"net/http"

	"freshfarm/internal/delivery/http/response"
	"freshfarm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for registration and login handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type registerResponse struct {
	User  *userView `json:"user"`
	Token string    `json:"token"`
}

// RegisterBuyer handles the buyer registration request.
func (h *AuthHandler) RegisterBuyer(c echo.Context) error {
	var input usecase.RegisterBuyerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.RegisterBuyer(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, registerResponse{
		User:  toUserView(output.User),
		Token: output.Token,
	}, "Buyer registered successfully")
}

// RegisterFarmer handles the farmer registration request.
func (h *AuthHandler) RegisterFarmer(c echo.Context) error {
	var input usecase.RegisterFarmerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.RegisterFarmer(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, registerResponse{
		User:  toUserView(output.User),
		Token: output.Token,
	}, "Farmer registered successfully")
}

// RegisterAdmin handles the admin registration request.
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var input usecase.RegisterAdminInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.RegisterAdmin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, registerResponse{
		User:  toUserView(output.User),
		Token: output.Token,
	}, "Admin registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token": output.Token,
		"user":  toUserView(output.User),
	}, "Login successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
