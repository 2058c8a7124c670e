package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
	"github.com/recipehub/recipe-api/internal/infrastructure/db/memory"
)

// racyUserRepo hides existing users from the pre-check so Create hits the
// unique constraint, as it would when two registrations race.
type racyUserRepo struct {
	*memory.UserRepository
}

func (r *racyUserRepo) FindByUsernameOrEmail(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(t *testing.T, users ports.UserRepository, clock Clock) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("secret", clock)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return NewAuthService(users, fastHasher(), tokens, clock, discardLogger), tokens
}

func chef(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Name:     "Test Chef",
		Email:    email,
		Phone:    "9876543210",
		Password: "Passw0rd!",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService(t, memory.NewUserRepository(), newFakeClock(baseTime))

	user, err := svc.Register(context.Background(), chef("chef1", "  Chef1@Example.COM "))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if user.Email != "chef1@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Passw0rd!" {
		t.Fatalf("password must be stored hashed, got %q", user.PasswordHash)
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", user.PasswordHash)
	}
	if !user.CreatedAt.Equal(baseTime) {
		t.Fatalf("expected CreatedAt %v, got %v", baseTime, user.CreatedAt)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t, memory.NewUserRepository(), newFakeClock(baseTime))

	in := chef("chef1", "chef1@example.com")
	in.Phone = "  "
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_Conflicts(t *testing.T) {
	svc, _ := newTestAuthService(t, memory.NewUserRepository(), newFakeClock(baseTime))
	ctx := context.Background()

	if _, err := svc.Register(ctx, chef("chef1", "chef1@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	tests := []struct {
		name  string
		in    ports.RegisterInput
		field string
	}{
		{"duplicate username", chef("chef1", "other@example.com"), domain.FieldUsername},
		{"duplicate email", chef("chef2", "CHEF1@example.com"), domain.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			if !errors.Is(err, domain.ErrConflict) {
				t.Fatalf("expected conflict, got %v", err)
			}
			field, ok := domain.ConflictField(err)
			if !ok || field != tt.field {
				t.Fatalf("expected conflict on %q, got %q", tt.field, field)
			}
		})
	}
}

func TestAuthService_Register_ConflictFromStore(t *testing.T) {
	users := memory.NewUserRepository()
	svc, _ := newTestAuthService(t, &racyUserRepo{UserRepository: users}, newFakeClock(baseTime))
	ctx := context.Background()

	if _, err := svc.Register(ctx, chef("chef1", "chef1@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, chef("chef2", "chef1@example.com"))
	field, ok := domain.ConflictField(err)
	if !ok || field != domain.FieldEmail {
		t.Fatalf("expected email conflict from store, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	clock := newFakeClock(baseTime)
	svc, tokens := newTestAuthService(t, memory.NewUserRepository(), clock)
	ctx := context.Background()

	registered, err := svc.Register(ctx, chef("chef1", "chef1@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	clock.Advance(time.Hour)

	for _, identifier := range []string{"chef1", "Chef1@Example.com"} {
		token, user, err := svc.Login(ctx, identifier, "Passw0rd!")
		if err != nil {
			t.Fatalf("Login(%q) returned error: %v", identifier, err)
		}
		if user.ID != registered.ID {
			t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
		}
		if user.LastLoginAt == nil || !user.LastLoginAt.Equal(clock.Now()) {
			t.Fatalf("expected LastLoginAt %v, got %v", clock.Now(), user.LastLoginAt)
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("issued token does not verify: %v", err)
		}
		if claims.UserID != registered.ID || claims.Username != "chef1" {
			t.Fatalf("unexpected claims %+v", claims)
		}
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t, memory.NewUserRepository(), newFakeClock(baseTime))
	ctx := context.Background()

	if _, err := svc.Register(ctx, chef("chef1", "chef1@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "chef1", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "Passw0rd!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", "Passw0rd!"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty identifier, got %v", err)
	}
}

func TestAuthService_Login_CorruptStoredHash(t *testing.T) {
	users := memory.NewUserRepository()
	svc, _ := newTestAuthService(t, users, newFakeClock(baseTime))
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{Username: "broken", Email: "broken@example.com", PasswordHash: "not-a-bcrypt-hash"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, _, err = svc.Login(ctx, "broken", "Passw0rd!")
	if !errors.Is(err, domain.ErrCorruptCredential) {
		t.Fatalf("expected ErrCorruptCredential, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := newTestAuthService(t, memory.NewUserRepository(), newFakeClock(baseTime))
	ctx := context.Background()

	first, err := svc.Register(ctx, chef("chef1", "chef1@example.com"))
	if err != nil {
		t.Fatalf("Register chef1: %v", err)
	}
	if _, err := svc.Register(ctx, chef("chef2", "chef2@example.com")); err != nil {
		t.Fatalf("Register chef2: %v", err)
	}
	id := domain.NewIdentity(first)

	name := "  Renamed Chef "
	updated, err := svc.UpdateProfile(ctx, id, ports.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Renamed Chef" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}

	same := "CHEF1@example.com"
	if _, err := svc.UpdateProfile(ctx, id, ports.UpdateProfileInput{Email: &same}); err != nil {
		t.Fatalf("keeping own email must succeed: %v", err)
	}

	taken := "chef2@example.com"
	_, err = svc.UpdateProfile(ctx, id, ports.UpdateProfileInput{Email: &taken})
	if field, ok := domain.ConflictField(err); !ok || field != domain.FieldEmail {
		t.Fatalf("expected email conflict, got %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, nil, ports.UpdateProfileInput{Name: &name}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
