package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/recipe-api/internal/api/metrics"
	"github.com/recipehub/recipe-api/internal/core/domain"
)

const identityKey = "identity"

// Authenticator resolves the caller from an Authorization header value.
type Authenticator interface {
	RequireAuth(ctx context.Context, authHeader string) (*domain.Identity, error)
	OptionalAuth(ctx context.Context, authHeader string) *domain.Identity
}

// RequireAuth rejects the request unless the bearer token resolves to an
// existing user. The error is left to the HTTP error handler.
func RequireAuth(auth Authenticator, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := auth.RequireAuth(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			m.ObserveToken(err)
			if err != nil {
				return err
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// the request through anonymously otherwise.
func OptionalAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := auth.OptionalAuth(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization)); id != nil {
				SetIdentity(c, id)
			}
			return next(c)
		}
	}
}

func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by the auth middleware, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}
