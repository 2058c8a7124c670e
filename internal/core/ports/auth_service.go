package ports

import (
	"context"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateProfileInput carries the optional fields of a profile update.
type UpdateProfileInput struct {
	Name  *string
	Email *string
	Phone *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login accepts a username or an email as identifier.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
	Profile(ctx context.Context, id *domain.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, id *domain.Identity, in UpdateProfileInput) (*domain.User, error)
}
