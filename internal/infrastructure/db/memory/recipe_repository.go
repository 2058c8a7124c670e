package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

type RecipeRepository struct {
	mu      sync.RWMutex
	seq     int
	recipes map[string]*domain.Recipe
	order   map[string]int
}

func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[string]*domain.Recipe),
		order:   make(map[string]int),
	}
}

func (r *RecipeRepository) Create(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	clone := *recipe
	clone.ID = nextID(r.seq)
	r.recipes[clone.ID] = &clone
	r.order[clone.ID] = r.seq

	out := clone
	return &out, nil
}

func (r *RecipeRepository) FindByID(_ context.Context, id string) (*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *RecipeRepository) List(_ context.Context, f ports.ListRecipesFilter) ([]*domain.Recipe, int64, error) {
	matched := r.collect(func(rec *domain.Recipe) bool {
		if f.Type != "" && rec.Type != f.Type {
			return false
		}
		if f.Author != "" && !containsFold(rec.AuthorName, f.Author) {
			return false
		}
		if f.Search != "" &&
			!containsFold(rec.Title, f.Search) &&
			!containsFold(rec.Ingredients, f.Search) &&
			!containsFold(rec.AuthorName, f.Search) {
			return false
		}
		return true
	})

	total := int64(len(matched))
	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Recipe{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *RecipeRepository) FindByAuthor(_ context.Context, authorID string) ([]*domain.Recipe, error) {
	return r.collect(func(rec *domain.Recipe) bool { return rec.AuthorID == authorID }), nil
}

func (r *RecipeRepository) Update(_ context.Context, id, authorID string, patch ports.RecipePatch, updatedAt time.Time) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok || rec.AuthorID != authorID {
		return nil, domain.ErrRecipeNotFound
	}
	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Type != nil {
		rec.Type = *patch.Type
	}
	if patch.Ingredients != nil {
		rec.Ingredients = *patch.Ingredients
	}
	if patch.Instructions != nil {
		rec.Instructions = *patch.Instructions
	}
	rec.UpdatedAt = updatedAt

	clone := *rec
	return &clone, nil
}

func (r *RecipeRepository) Delete(_ context.Context, id, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok || rec.AuthorID != authorID {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	delete(r.order, id)
	return nil
}

func (r *RecipeRepository) Count(_ context.Context, recipeType domain.RecipeType) (int64, error) {
	n := len(r.collect(func(rec *domain.Recipe) bool {
		return recipeType == "" || rec.Type == recipeType
	}))
	return int64(n), nil
}

// collect returns clones of matching recipes, newest first.
func (r *RecipeRepository) collect(match func(*domain.Recipe) bool) []*domain.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Recipe{}
	for _, rec := range r.recipes {
		if match(rec) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.order[out[i].ID] > r.order[out[j].ID]
	})
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
