package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/recipe-api/internal/api/metrics"
	"github.com/recipehub/recipe-api/internal/api/middleware"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	service ports.RecipeService
	metrics *metrics.Metrics
}

func NewRecipeHandler(service ports.RecipeService, m *metrics.Metrics) *RecipeHandler {
	return &RecipeHandler{service: service, metrics: m}
}

// List handles GET /api/recipes.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Param        search  query     string  false  "Matches title, ingredients or author"
// @Param        type    query     string  false  "veg or non-veg"
// @Param        author  query     string  false  "Author name (partial)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 50, max 100)"
// @Success      200     {object}  listRecipesResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	in := ports.ListRecipesInput{
		Search: c.QueryParam("search"),
		Type:   c.QueryParam("type"),
		Author: c.QueryParam("author"),
	}
	if err := echo.QueryParamsBinder(c).
		Int("page", &in.Page).
		Int("limit", &in.Limit).
		BindError(); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listRecipesResponse{
		Count:      len(res.Items),
		TotalCount: res.Total,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Recipes:    toRecipeList(res.Items),
	})
}

// Get handles GET /api/recipes/:id.
//
// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  recipeEnvelope
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipeEnvelope{Recipe: toRecipeDetail(recipe)})
}

// Create handles POST /api/recipes.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecipeRequest  true  "Recipe"
// @Success      201   {object}  recipeEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.service.Create(c.Request().Context(), middleware.IdentityFrom(c), toRecipeInput(req))
	h.metrics.ObserveRecipe("create", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, recipeEnvelope{
		Message: "recipe created successfully",
		Recipe:  toRecipeDetail(recipe),
	})
}

// Update handles PUT /api/recipes/:id. Only the author may update.
//
// @Summary      Update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Recipe id"
// @Param        body  body      updateRecipeRequest  true  "Fields to change"
// @Success      200   {object}  recipeEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.service.Update(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), toRecipePatch(req))
	h.metrics.ObserveRecipe("update", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, recipeEnvelope{
		Message: "recipe updated successfully",
		Recipe:  toRecipeDetail(recipe),
	})
}

// Delete handles DELETE /api/recipes/:id. Only the author may delete.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"))
	h.metrics.ObserveRecipe("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "recipe deleted successfully"})
}

// ListByUser handles GET /api/recipes/user/:userId.
//
// @Summary      Recipes of a user
// @Tags         recipes
// @Produce      json
// @Param        userId  path      string  true  "Author user id"
// @Success      200     {object}  recipesResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /api/recipes/user/{userId} [get]
func (h *RecipeHandler) ListByUser(c echo.Context) error {
	recipes, err := h.service.ListByAuthor(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipesResponse{Count: len(recipes), Recipes: toRecipeList(recipes)})
}

// ListMine handles GET /api/recipes/my/recipes.
//
// @Summary      Recipes of the caller
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  recipesResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/recipes/my/recipes [get]
func (h *RecipeHandler) ListMine(c echo.Context) error {
	recipes, err := h.service.ListMine(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipesResponse{Count: len(recipes), Recipes: toRecipeList(recipes)})
}
