package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitstore/storefront/internal/core/ports"
)

// UserHandler handles profile and permission endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdatePermissions replaces a user's permission set.
//
// @Summary      Update a user's permissions
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Target user ID"
// @Param        body  body      updatePermissionsRequest  true  "New permission set"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/{id}/permissions [post]
func (h *UserHandler) UpdatePermissions(c echo.Context) error {
	actorID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req updatePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.users.UpdatePermissions(c.Request().Context(), actorID, c.Param("id"), req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}
