package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	minSearchQueryLen  = 2

	// DefaultStatsTTL is how long a stats snapshot is served from cache.
	DefaultStatsTTL = 30 * time.Second
)

type UserService struct {
	users    ports.UserRepository
	recipes  ports.RecipeRepository
	cache    ports.StatsCache
	statsTTL time.Duration
	clock    Clock
	log      zerolog.Logger
}

// NewUserService wires the public user endpoints. cache may be nil.
func NewUserService(
	users ports.UserRepository,
	recipes ports.RecipeRepository,
	cache ports.StatsCache,
	statsTTL time.Duration,
	clock Clock,
	log zerolog.Logger,
) *UserService {
	if statsTTL <= 0 {
		statsTTL = DefaultStatsTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &UserService{
		users:    users,
		recipes:  recipes,
		cache:    cache,
		statsTTL: statsTTL,
		clock:    clock,
		log:      log,
	}
}

func (s *UserService) PublicProfile(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, strings.TrimSpace(username))
}

func (s *UserService) Search(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryLen {
		return nil, fmt.Errorf("search users: %w", domain.NewInputError(fmt.Sprintf("search query must be at least %d characters long", minSearchQueryLen)))
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	return s.users.Search(ctx, query, limit)
}

// Stats counts users and recipes concurrently. A cached snapshot younger
// than statsTTL is returned when available; cache errors are not fatal.
func (s *UserService) Stats(ctx context.Context) (*domain.PlatformStats, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("stats cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	var stats domain.PlatformStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRecipes, err = s.recipes.Count(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.VegRecipes, err = s.recipes.Count(gctx, domain.RecipeTypeVeg)
		return err
	})
	g.Go(func() (err error) {
		stats.NonVegRecipes, err = s.recipes.Count(gctx, domain.RecipeTypeNonVeg)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	stats.LastUpdated = s.clock.Now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, &stats, s.statsTTL); err != nil {
			s.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return &stats, nil
}
