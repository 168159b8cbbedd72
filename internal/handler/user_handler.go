package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"userdir/internal/auth"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/service"
)

// UserHandler handles the protected directory endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary List users (paginated)
// @Tags users
// @Produce json
// @Param page query int false "1-indexed page, 10 per page"
// @Success 200 {object} model.UserListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	users, total, err := h.svc.List(c.Request().Context(), page)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, model.UserListResponse{Users: users, Total: total})
}

// Create godoc
// @Summary Create a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.CreateUserRequest true "User data"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req model.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
		}
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, model.UserResponse{User: user})
}

// Get godoc
// @Summary Get a user by id (admin or self)
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.svc.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, model.UserResponse{User: user})
}

// Update godoc
// @Summary Partially update a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body model.UpdateUserRequest true "Fields to update; empty fields are left unchanged"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req model.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
		}
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, model.UserResponse{User: user})
}

// Delete godoc
// @Summary Delete a user (admin)
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}
