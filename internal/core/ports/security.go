package ports

import "github.com/recipehub/recipe-api/internal/core/domain"

// PasswordHasher derives and checks one-way salted password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) (bool, error)
}

// TokenManager issues and verifies signed session tokens.
type TokenManager interface {
	Issue(userID, username string) (string, error)
	Verify(token string) (*domain.Claims, error)
}
