package ports

import (
	"context"
	"time"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// UserProfilePatch carries the optional profile fields to overwrite.
// Nil fields are left untouched.
type UserProfilePatch struct {
	Name  *string
	Email *string
	Phone *string
}

// UserRepository defines persistence operations for user accounts.
//
// Create and UpdateProfile surface unique-index violations as
// *domain.ConflictError; lookups return domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByUsernameOrEmail returns the first user whose username equals
	// username or whose email equals email.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	// EmailTakenByOther reports whether email belongs to a user other than userID.
	EmailTakenByOther(ctx context.Context, email, userID string) (bool, error)
	UpdateProfile(ctx context.Context, id string, patch UserProfilePatch, updatedAt time.Time) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// Search matches query case-insensitively against username or name.
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
