package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

// Guard turns an Authorization header into a resolved Identity.
//
//	no token          -> required: ErrUnauthenticated, optional: anonymous
//	invalid / expired -> required: ErrUnauthenticated, optional: anonymous
//	valid, user gone  -> required: ErrUnauthenticated, optional: anonymous
//	valid             -> Identity
type Guard struct {
	tokens ports.TokenManager
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewGuard(tokens ports.TokenManager, users ports.UserRepository, log zerolog.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: log}
}

// BearerToken extracts the token of a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireAuth resolves the caller or fails with ErrUnauthenticated.
// Store failures other than a missing user are returned unchanged.
func (g *Guard) RequireAuth(ctx context.Context, authHeader string) (*domain.Identity, error) {
	raw, ok := BearerToken(authHeader)
	if !ok {
		return nil, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthenticated)
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	user, err := g.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	return domain.NewIdentity(user), nil
}

// OptionalAuth resolves the caller when possible and returns nil otherwise.
func (g *Guard) OptionalAuth(ctx context.Context, authHeader string) *domain.Identity {
	if strings.TrimSpace(authHeader) == "" {
		return nil
	}

	id, err := g.RequireAuth(ctx, authHeader)
	if err != nil {
		g.log.Debug().Err(err).Msg("optional auth: continuing anonymously")
		return nil
	}
	return id
}
