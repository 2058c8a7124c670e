package ports

import (
	"context"
	"time"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// StatsCache stores the platform stats snapshot for a short time.
type StatsCache interface {
	Get(ctx context.Context) (*domain.PlatformStats, bool, error)
	Set(ctx context.Context, stats *domain.PlatformStats, ttl time.Duration) error
}

type UserService interface {
	PublicProfile(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
	Stats(ctx context.Context) (*domain.PlatformStats, error)
}
