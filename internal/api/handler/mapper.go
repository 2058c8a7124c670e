package handler

import (
	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
}

func toRecipeInput(req createRecipeRequest) ports.RecipeInput {
	return ports.RecipeInput{
		Title:        req.Title,
		Type:         domain.RecipeType(req.Type),
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
}

func toRecipePatch(req updateRecipeRequest) ports.RecipePatch {
	patch := ports.RecipePatch{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
	if req.Type != nil {
		t := domain.RecipeType(*req.Type)
		patch.Type = &t
	}
	return patch
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func toPublicUser(u *domain.User) publicUserResponse {
	return publicUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Type:         string(r.Type),
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Author:       r.AuthorName,
		AuthorID:     r.AuthorID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// toRecipeDetail adds the line-split ingredient and instruction lists.
func toRecipeDetail(r *domain.Recipe) *recipeResponse {
	resp := toRecipeResponse(r)
	resp.IngredientsArray = r.IngredientsList()
	resp.InstructionsArray = r.InstructionsList()
	return &resp
}

func toRecipeList(rs []*domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecipeResponse(r))
	}
	return out
}
