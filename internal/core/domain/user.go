package domain

import (
	"strings"
	"time"
)

// User models a registered account.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLogin"`
}

// NormalizeEmail trims and lowercases an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PlatformStats aggregates global counters shown on the public stats page.
type PlatformStats struct {
	TotalUsers    int64     `json:"totalUsers"`
	TotalRecipes  int64     `json:"totalRecipes"`
	VegRecipes    int64     `json:"vegRecipes"`
	NonVegRecipes int64     `json:"nonVegRecipes"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
