package handler

import (
	"strings"
	"time"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// ErrorResponse is the standard error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Name     string `json:"name"     validate:"required,min=2,max=50,personname"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,inphone"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *registerRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = domain.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// loginRequest accepts a username or an email in the username field.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitnil,min=2,max=50,personname"`
	Email *string `json:"email" validate:"omitnil,email"`
	Phone *string `json:"phone" validate:"omitnil,inphone"`
}

func (r *updateProfileRequest) normalize() {
	trimPtr(r.Name)
	trimPtr(r.Phone)
	if r.Email != nil {
		*r.Email = domain.NormalizeEmail(*r.Email)
	}
}

type userResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type publicUserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token,omitempty"`
	User    *userResponse `json:"user"`
}

type verifyTokenResponse struct {
	Message string             `json:"message"`
	User    publicUserResponse `json:"user"`
}

type profileResponse struct {
	User *userResponse `json:"user"`
}

// --- Recipes ---

type createRecipeRequest struct {
	Title        string `json:"title"        validate:"required,min=3,max=100"`
	Type         string `json:"type"         validate:"required,recipetype"`
	Ingredients  string `json:"ingredients"  validate:"required,min=10,max=2000"`
	Instructions string `json:"instructions" validate:"required,min=20,max=5000"`
}

func (r *createRecipeRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Type = strings.TrimSpace(r.Type)
	r.Ingredients = strings.TrimSpace(r.Ingredients)
	r.Instructions = strings.TrimSpace(r.Instructions)
}

type updateRecipeRequest struct {
	Title        *string `json:"title"        validate:"omitnil,min=3,max=100"`
	Type         *string `json:"type"         validate:"omitnil,recipetype"`
	Ingredients  *string `json:"ingredients"  validate:"omitnil,min=10,max=2000"`
	Instructions *string `json:"instructions" validate:"omitnil,min=20,max=5000"`
}

func (r *updateRecipeRequest) normalize() {
	trimPtr(r.Title)
	trimPtr(r.Type)
	trimPtr(r.Ingredients)
	trimPtr(r.Instructions)
}

type recipeResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Type              string    `json:"type"`
	Ingredients       string    `json:"ingredients"`
	Instructions      string    `json:"instructions"`
	Author            string    `json:"author"`
	AuthorID          string    `json:"authorId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	IngredientsArray  []string  `json:"ingredientsArray,omitempty"`
	InstructionsArray []string  `json:"instructionsArray,omitempty"`
}

type recipeEnvelope struct {
	Message string          `json:"message,omitempty"`
	Recipe  *recipeResponse `json:"recipe"`
}

type listRecipesResponse struct {
	Count      int              `json:"count"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Recipes    []recipeResponse `json:"recipes"`
}

type recipesResponse struct {
	Count   int              `json:"count"`
	Recipes []recipeResponse `json:"recipes"`
}

// --- Users ---

type publicProfileResponse struct {
	User publicUserResponse `json:"user"`
}

type searchUsersResponse struct {
	Count int                  `json:"count"`
	Users []publicUserResponse `json:"users"`
}

type statsResponse struct {
	Stats *domain.PlatformStats `json:"stats"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
