package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

const (
	defaultRecipeLimit = 50
	maxRecipeLimit     = 100
	// maxRecipeOffset bounds (page-1)*limit; pages beyond it are always empty.
	maxRecipeOffset = math.MaxInt32
)

type RecipeService struct {
	repo   ports.RecipeRepository
	clock  Clock
	logger zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, clock Clock, logger zerolog.Logger) *RecipeService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RecipeService{repo: repo, clock: clock, logger: logger}
}

// Create stores a new recipe owned by the caller.
func (s *RecipeService) Create(ctx context.Context, id *domain.Identity, in ports.RecipeInput) (*domain.Recipe, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("create recipe: %w", domain.NewInputError("type must be either veg or non-veg"))
	}

	now := s.clock.Now().UTC()
	recipe, err := s.repo.Create(ctx, &domain.Recipe{
		Title:        strings.TrimSpace(in.Title),
		Type:         in.Type,
		Ingredients:  strings.TrimSpace(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
		AuthorID:     id.UserID,
		AuthorName:   id.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", id.UserID).Msg("failed to create recipe")
		return nil, err
	}

	s.logger.Info().Str("recipe_id", recipe.ID).Str("author_id", id.UserID).Msg("recipe created")
	return recipe, nil
}

func (s *RecipeService) Get(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	return s.repo.FindByID(ctx, recipeID)
}

// List returns a page of recipes. An unknown type filter is ignored.
func (s *RecipeService) List(ctx context.Context, in ports.ListRecipesInput) (*ports.ListRecipesResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultRecipeLimit
	}
	if limit > maxRecipeLimit {
		limit = maxRecipeLimit
	}

	filter := ports.ListRecipesFilter{
		Author: strings.TrimSpace(in.Author),
		Search: strings.TrimSpace(in.Search),
		Page:   page,
		Limit:  limit,
	}
	if t := domain.RecipeType(in.Type); t.Valid() {
		filter.Type = t
	}

	query := filter
	outOfRange := page-1 > maxRecipeOffset/limit
	if outOfRange {
		// only the match count is needed
		query.Page, query.Limit = 1, 1
	}

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if outOfRange {
		items = []*domain.Recipe{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListRecipesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *RecipeService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Recipe, error) {
	return s.repo.FindByAuthor(ctx, authorID)
}

func (s *RecipeService) ListMine(ctx context.Context, id *domain.Identity) ([]*domain.Recipe, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByAuthor(ctx, id.UserID)
}

// Update applies patch to a recipe owned by the caller.
func (s *RecipeService) Update(ctx context.Context, id *domain.Identity, recipeID string, patch ports.RecipePatch) (*domain.Recipe, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	if patch.Empty() {
		return nil, fmt.Errorf("update recipe: %w", domain.NewInputError("nothing to update"))
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, fmt.Errorf("update recipe: %w", domain.NewInputError("type must be either veg or non-veg"))
	}

	if err := s.authorize(ctx, id, recipeID); err != nil {
		return nil, err
	}

	patch.Title = trimmed(patch.Title)
	patch.Ingredients = trimmed(patch.Ingredients)
	patch.Instructions = trimmed(patch.Instructions)

	updated, err := s.repo.Update(ctx, recipeID, id.UserID, patch, s.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	s.logger.Info().Str("recipe_id", recipeID).Str("author_id", id.UserID).Msg("recipe updated")
	return updated, nil
}

// Delete removes a recipe owned by the caller.
func (s *RecipeService) Delete(ctx context.Context, id *domain.Identity, recipeID string) error {
	if id == nil {
		return domain.ErrUnauthenticated
	}
	if err := s.authorize(ctx, id, recipeID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recipeID, id.UserID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.logger.Info().Str("recipe_id", recipeID).Str("author_id", id.UserID).Msg("recipe deleted")
	return nil
}

// authorize loads the recipe and applies the ownership check.
func (s *RecipeService) authorize(ctx context.Context, id *domain.Identity, recipeID string) error {
	recipe, err := s.repo.FindByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if !domain.IsOwner(id, recipe) {
		s.logger.Warn().Str("recipe_id", recipeID).Str("user_id", id.UserID).Msg("ownership check failed")
		return domain.ErrForbidden
	}
	return nil
}
