package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitstore/storefront/internal/api/metrics"
	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup creates an account and opens a session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.auth.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Signin authenticates by email and password and opens a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.auth.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("failure").Inc()
		return err
	}

	setSessionCookie(c, token)
	metrics.SigninsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Signout clears the session cookie. No identity is required.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "goodbye"})
}

// RequestReset starts the password-reset flow.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestResetRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/request-reset [post]
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req requestResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.auth.RequestReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	// Generic acknowledgment: delivery outcome is never reflected here.
	return c.JSON(http.StatusOK, messageResponse{Message: "check your email for a reset token"})
}

// ResetPassword completes the reset flow and opens a fresh session.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  userResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// The confirmation check is a service concern so it provably precedes any
	// lookup; only presence is validated here.
	if req.ResetToken == "" {
		return domain.ErrResetTokenInvalid
	}

	token, user, err := h.auth.ResetPassword(c.Request().Context(), req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, toUserResponse(user))
}
