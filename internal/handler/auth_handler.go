package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/service"
)

// AuthHandler handles the public authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.CreateUserRequest true "Registration data"
// @Success 201 {object} model.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	_, token, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email is already in use. Please login instead.")
		}
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, model.TokenResponse{
		Message: "User registered successfully",
		Token:   token,
	})
}

// Login godoc
// @Summary Authenticate and obtain a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.TokenResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, model.TokenResponse{Token: token})
}

// mapError converts a domain error to an echo HTTPError. Unexpected
// errors are logged server-side and collapsed to a generic 500 so driver
// details never leak to clients.
func mapError(c echo.Context, err error) *echo.HTTPError {
	status := apperrors.StatusFor(err)
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		return echo.NewHTTPError(status, "Internal server error. Please try again later.")
	}
	return echo.NewHTTPError(status, err.Error())
}
