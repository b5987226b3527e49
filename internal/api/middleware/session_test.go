package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signSession(t *testing.T, secret, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSession_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSession(t, "secret", "user_1")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Session("secret")(func(c echo.Context) error {
		called = true
		id, ok := UserID(c)
		if !ok || id != "user_1" {
			t.Fatalf("expected user_1 in context, got %q ok=%v", id, ok)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSession_MissingCookieIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("secret")(func(c echo.Context) error {
		if _, ok := UserID(c); ok {
			t.Fatalf("expected anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("anonymous request must not error at this layer: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_BadSignatureIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSession(t, "wrong-secret", "user_1")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("secret")(func(c echo.Context) error {
		if _, ok := UserID(c); ok {
			t.Fatalf("tampered cookie must not authenticate")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_ExpiredTokenIsAnonymous(t *testing.T) {
	e := echo.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user_1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte("secret"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("secret")(func(c echo.Context) error {
		if _, ok := UserID(c); ok {
			t.Fatalf("expired cookie must not authenticate")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestRequireSession(t *testing.T) {
	e := echo.New()

	// Anonymous: 401.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}

	// Authenticated: passes through.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), "user_1"))
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	called := false
	handler = RequireSession()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for authenticated request")
	}
}
