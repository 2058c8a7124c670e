package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

const (
	// DefaultBcryptCost is the work factor used when none is configured.
	DefaultBcryptCost = 12
	// MaxBcryptCost bounds the work factor so a verification stays well
	// under a few hundred milliseconds.
	MaxBcryptCost = 15
)

// PasswordHasher hashes passwords with bcrypt. Every call to Hash draws a
// fresh random salt, so the same password never hashes to the same string.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost.
// A zero cost selects DefaultBcryptCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > MaxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, MaxBcryptCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Hash returns the self-describing bcrypt encoding ($2a$<cost>$<salt><digest>).
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("hash password: empty input: %w", domain.ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("hash password: %w", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. The comparison is
// constant-time. A hash that cannot be parsed yields ErrCorruptCredential.
func (h *PasswordHasher) Verify(plaintext, hashed string) (bool, error) {
	if _, err := bcrypt.Cost([]byte(hashed)); err != nil {
		return false, fmt.Errorf("verify password: %w: %v", domain.ErrCorruptCredential, err)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w: %v", domain.ErrCorruptCredential, err)
	}
}
