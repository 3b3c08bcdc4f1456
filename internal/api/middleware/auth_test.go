package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func sign(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := sign(t, jwt.MapClaims{
		"sub":  "alice@example.com",
		"uid":  "u1",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, "secret")

	rec, c, called := runAuth(t, "Bearer "+token)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(CtxEmail) != "alice@example.com" {
		t.Errorf("email not set")
	}
	if c.Get(CtxRole) != "ADMIN" {
		t.Errorf("role not set")
	}
	if c.Get(CtxUserID) != "u1" {
		t.Errorf("user id not set")
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := sign(t, jwt.MapClaims{
		"sub":  "alice@example.com",
		"role": "ADMIN",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}, jwt.SigningMethodHS256, "secret")
	wrongKey := sign(t, jwt.MapClaims{"sub": "a@b.c", "role": "ADMIN"}, jwt.SigningMethodHS256, "other")
	wrongAlg := sign(t, jwt.MapClaims{"sub": "a@b.c", "role": "ADMIN"}, jwt.SigningMethodHS512, "secret")
	noRole := sign(t, jwt.MapClaims{"sub": "a@b.c"}, jwt.SigningMethodHS256, "secret")

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token abc",
		"garbage token":   "Bearer not-a-token",
		"expired":         "Bearer " + expired,
		"wrong secret":    "Bearer " + wrongKey,
		"wrong algorithm": "Bearer " + wrongAlg,
		"missing role":    "Bearer " + noRole,
	}
	for name, header := range cases {
		rec, _, called := runAuth(t, header)
		if called {
			t.Errorf("%s: next must not be called", name)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}
