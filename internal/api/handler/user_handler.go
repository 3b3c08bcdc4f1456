package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// UserHandler backs the admin user management endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Promote handles PUT /users/:id/promote.
//
// @Summary      Promote a user to STORE_MANAGER
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  roleChangeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/promote [put]
func (h *UserHandler) Promote(c echo.Context) error {
	u, err := h.service.Promote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleChangeResponse{Message: "User promoted to STORE_MANAGER successfully.", User: u})
}

// Demote handles PUT /users/:id/demote.
//
// @Summary      Demote a user to USER
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  roleChangeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/demote [put]
func (h *UserHandler) Demote(c echo.Context) error {
	u, err := h.service.Demote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleChangeResponse{Message: "User demoted to USER successfully.", User: u})
}
