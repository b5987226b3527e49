package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid password"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "no such user"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "an account with that email already exists"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, "cart item not found"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrInvalidPermission):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrCartEmpty):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusBadGateway, "payment failed"
	case errors.Is(err, domain.ErrMailDelivery):
		return http.StatusBadGateway, "mail delivery failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
