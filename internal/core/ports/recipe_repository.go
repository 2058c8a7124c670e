package ports

import (
	"context"
	"time"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// ListRecipesFilter carries all query parameters for listing recipes.
type ListRecipesFilter struct {
	Type   domain.RecipeType // optional: exact match
	Author string            // optional: partial, case-insensitive match on author name
	Search string            // optional: partial match on title, ingredients or author name
	Page   int               // 1-based
	Limit  int
}

// RecipePatch holds the fields of an update. Nil fields are left untouched.
type RecipePatch struct {
	Title        *string
	Type         *domain.RecipeType
	Ingredients  *string
	Instructions *string
}

// Empty reports whether the patch changes nothing.
func (p RecipePatch) Empty() bool {
	return p.Title == nil && p.Type == nil && p.Ingredients == nil && p.Instructions == nil
}

// RecipeRepository defines persistence operations for recipes.
// Malformed ids yield domain.ErrInvalidID, missing ones domain.ErrRecipeNotFound.
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	// List returns a page of recipes, newest first, and the total match count.
	List(ctx context.Context, filter ListRecipesFilter) ([]*domain.Recipe, int64, error)
	FindByAuthor(ctx context.Context, authorID string) ([]*domain.Recipe, error)
	// Update applies patch only when the recipe is still owned by authorID.
	Update(ctx context.Context, id, authorID string, patch RecipePatch, updatedAt time.Time) (*domain.Recipe, error)
	Delete(ctx context.Context, id, authorID string) error
	// Count counts all recipes, or only those of recipeType when it is non-empty.
	Count(ctx context.Context, recipeType domain.RecipeType) (int64, error)
}
