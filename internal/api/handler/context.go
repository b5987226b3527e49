package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitstore/storefront/internal/api/middleware"
)

const sessionLifetime = 365 * 24 * time.Hour

// requireUserID extracts the authenticated identity injected by the Session
// middleware, failing with 401 when the request is anonymous.
func requireUserID(c echo.Context) (string, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "you must be signed in")
	}
	return id, nil
}

// setSessionCookie attaches the signed session token as an HTTP-only cookie.
func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
