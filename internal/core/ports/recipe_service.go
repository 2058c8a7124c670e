package ports

import (
	"context"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Title        string
	Type         domain.RecipeType
	Ingredients  string
	Instructions string
}

// ListRecipesInput carries the query parameters of the list endpoint.
type ListRecipesInput struct {
	Search string
	Type   string
	Author string
	Page   int
	Limit  int
}

// ListRecipesResult is a page of recipes.
type ListRecipesResult struct {
	Items      []*domain.Recipe
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RecipeService defines use-case operations for recipes. Update and Delete
// fail with domain.ErrForbidden unless the identity owns the recipe.
type RecipeService interface {
	Create(ctx context.Context, id *domain.Identity, in RecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, recipeID string) (*domain.Recipe, error)
	List(ctx context.Context, in ListRecipesInput) (*ListRecipesResult, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Recipe, error)
	ListMine(ctx context.Context, id *domain.Identity) ([]*domain.Recipe, error)
	Update(ctx context.Context, id *domain.Identity, recipeID string, patch RecipePatch) (*domain.Recipe, error)
	Delete(ctx context.Context, id *domain.Identity, recipeID string) error
}
