package domain

import (
	"strings"
	"time"
)

// RecipeType classifies a recipe as vegetarian or not.
type RecipeType string

const (
	RecipeTypeVeg    RecipeType = "veg"
	RecipeTypeNonVeg RecipeType = "non-veg"
)

// Valid reports whether t is one of the known recipe types.
func (t RecipeType) Valid() bool {
	return t == RecipeTypeVeg || t == RecipeTypeNonVeg
}

// Recipe is owned by exactly one user, fixed at creation.
type Recipe struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Type         RecipeType `json:"type"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
	AuthorID     string     `json:"author"`
	AuthorName   string     `json:"authorName"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IngredientsList splits the ingredients text into non-blank lines.
func (r *Recipe) IngredientsList() []string {
	return splitLines(r.Ingredients)
}

// InstructionsList splits the instructions text into non-blank lines.
func (r *Recipe) InstructionsList() []string {
	return splitLines(r.Instructions)
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// IsOwner reports whether id is the author of r. Comparison is by user id,
// never by display name. A nil identity or recipe owns nothing.
func IsOwner(id *Identity, r *Recipe) bool {
	if id == nil || r == nil || id.UserID == "" {
		return false
	}
	return id.UserID == r.AuthorID
}
