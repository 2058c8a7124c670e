package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

// AuthService implements registration, login and profile maintenance.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenManager
	clock  Clock
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager, clock Clock, log zerolog.Logger) *AuthService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, clock: clock, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, fmt.Errorf("register: %w", domain.NewInputError("all fields are required"))
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		if existing.Username == username {
			return nil, domain.NewConflictError(domain.FieldUsername)
		}
		return nil, domain.NewConflictError(domain.FieldEmail)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup existing user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.clock.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// a concurrent registration can still lose the unique-index race
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, fmt.Errorf("login: %w", domain.NewInputError("username and password are required"))
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier, domain.NormalizeEmail(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash is unusable")
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, fmt.Errorf("login: record last login: %w", err)
	}
	user.LastLoginAt = &now

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	return token, user, nil
}

// Profile reloads the caller's account so the response reflects the store.
func (s *AuthService) Profile(ctx context.Context, id *domain.Identity) (*domain.User, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, id.UserID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, id *domain.Identity, in ports.UpdateProfileInput) (*domain.User, error) {
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}

	patch := ports.UserProfilePatch{Name: trimmed(in.Name), Phone: trimmed(in.Phone)}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		patch.Email = &email

		if id.User == nil || email != id.User.Email {
			taken, err := s.users.EmailTakenByOther(ctx, email, id.UserID)
			if err != nil {
				return nil, fmt.Errorf("update profile: check email: %w", err)
			}
			if taken {
				return nil, domain.NewConflictError(domain.FieldEmail)
			}
		}
	}

	updated, err := s.users.UpdateProfile(ctx, id.UserID, patch, s.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
