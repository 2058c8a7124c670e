package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

type stubAuthenticator struct {
	identity *domain.Identity
	err      error
	headers  []string
}

func (s *stubAuthenticator) RequireAuth(_ context.Context, header string) (*domain.Identity, error) {
	s.headers = append(s.headers, header)
	return s.identity, s.err
}

func (s *stubAuthenticator) OptionalAuth(_ context.Context, header string) *domain.Identity {
	s.headers = append(s.headers, header)
	if s.err != nil {
		return nil
	}
	return s.identity
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuth_ValidToken(t *testing.T) {
	chef := &domain.Identity{UserID: "u1", Username: "chef1"}
	stub := &stubAuthenticator{identity: chef}
	c, rec := newContext("Bearer good")

	called := false
	h := RequireAuth(stub, nil)(func(c echo.Context) error {
		called = true
		if IdentityFrom(c) != chef {
			t.Fatalf("identity not stored on context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.headers) != 1 || stub.headers[0] != "Bearer good" {
		t.Fatalf("unexpected headers passed to guard: %v", stub.headers)
	}
}

func TestRequireAuth_Rejected(t *testing.T) {
	cause := fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenExpired)
	stub := &stubAuthenticator{err: cause}
	c, _ := newContext("Bearer expired")

	h := RequireAuth(stub, nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != cause {
		t.Fatalf("expected guard error to be returned, got %v", err)
	}
}

func TestOptionalAuth(t *testing.T) {
	chef := &domain.Identity{UserID: "u1", Username: "chef1"}

	tests := []struct {
		name   string
		stub   *stubAuthenticator
		header string
		want   *domain.Identity
	}{
		{"anonymous", &stubAuthenticator{}, "", nil},
		{"invalid token", &stubAuthenticator{err: domain.ErrUnauthenticated}, "Bearer bad", nil},
		{"valid token", &stubAuthenticator{identity: chef}, "Bearer good", chef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(tt.header)
			h := OptionalAuth(tt.stub)(func(c echo.Context) error {
				if got := IdentityFrom(c); got != tt.want {
					t.Fatalf("expected identity %v, got %v", tt.want, got)
				}
				return c.NoContent(http.StatusOK)
			})

			if err := h(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestIdentityFrom_Empty(t *testing.T) {
	c, _ := newContext("")
	if IdentityFrom(c) != nil {
		t.Fatalf("expected nil identity")
	}
}
