package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

type stubAdminChecker struct {
	admins map[string]bool
	err    error
}

func (s *stubAdminChecker) CheckAdmin(_ context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.admins[email], nil
}

func runRoleGate(t *testing.T, email string, checker *stubAdminChecker) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set(EmailKey, email)
	}

	called := false
	handler := RequireAdmin(checker, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestRequireAdmin_Allows(t *testing.T) {
	called, err := runRoleGate(t, "boss@x.io", &stubAdminChecker{admins: map[string]bool{"boss@x.io": true}})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireAdmin_ForbidsNonAdmin(t *testing.T) {
	called, err := runRoleGate(t, "user@x.io", &stubAdminChecker{admins: map[string]bool{"boss@x.io": true}})
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAdmin_WithoutIdentity(t *testing.T) {
	called, err := runRoleGate(t, "", &stubAdminChecker{})
	if called || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequireAdmin_StoreError(t *testing.T) {
	boom := errors.New("mongo down")
	called, err := runRoleGate(t, "boss@x.io", &stubAdminChecker{err: boom})
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("store failure must not look like a privilege failure")
	}
}
