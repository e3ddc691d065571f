package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestFromToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"role": RoleDoctor, "name": "Dr. Rao"})

	s, err := FromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Role != RoleDoctor {
		t.Errorf("expected role doctor, got %q", s.Role)
	}
	if s.Name != "Dr. Rao" {
		t.Errorf("expected name Dr. Rao, got %q", s.Name)
	}
	if s.Token != token {
		t.Error("expected raw token to be retained for upstream forwarding")
	}
}

func TestFromToken_MissingRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"name": "someone"})
	if _, err := FromToken(token); err == nil {
		t.Error("expected error for token without role claim")
	}
}

func TestFromToken_Garbage(t *testing.T) {
	if _, err := FromToken("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestMiddleware_AttachesSession(t *testing.T) {
	e := echo.New()
	token := signToken(t, jwt.MapClaims{"role": RoleReceptionist, "name": "Asha"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Session
	var ok bool
	h := Middleware()(func(c echo.Context) error {
		got, ok = FromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected session on context")
	}
	if got.Role != RoleReceptionist {
		t.Errorf("expected receptionist, got %q", got.Role)
	}
	if TokenFromContext(WithSession(req.Context(), got)) != token {
		t.Error("expected token to round-trip through the context")
	}
}

func TestMiddleware_AnonymousPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error {
		if _, ok := FromContext(c.Request().Context()); ok {
			t.Error("expected no session for anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_RejectsMalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "token-without-scheme")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	err := h(c)
	if err == nil {
		t.Fatal("expected error for malformed header")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(s *Session, roles ...string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if s != nil {
			req = req.WithContext(WithSession(req.Context(), *s))
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		h := RequireRole(roles...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		return h(c)
	}

	if err := run(&Session{Role: RoleDoctor}, RoleDoctor); err != nil {
		t.Errorf("doctor should reach doctor routes: %v", err)
	}
	if err := run(&Session{Role: RoleDoctor}, RoleDoctor, RoleReceptionist); err != nil {
		t.Errorf("doctor should reach shared routes: %v", err)
	}

	err := run(&Session{Role: RoleReceptionist}, RoleDoctor)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %v", err)
	}

	err = run(nil, RoleDoctor)
	he, ok = err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing session, got %v", err)
	}
}
