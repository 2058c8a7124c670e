package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipehub/recipe-api/internal/api/handler"
	"github.com/recipehub/recipe-api/internal/core/service"
	"github.com/recipehub/recipe-api/internal/infrastructure/db/memory"
)

type testServer struct {
	e   *echo.Echo
	reg *prometheus.Registry
}

func newTestServer(t *testing.T, checks map[string]handler.Check) *testServer {
	t.Helper()

	log := zerolog.Nop()
	users := memory.NewUserRepository()
	recipes := memory.NewRecipeRepository()

	hasher, err := service.NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	tokens, err := service.NewTokenService("router-test-secret", service.SystemClock{})
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}

	reg := prometheus.NewRegistry()
	e := NewRouter(Services{
		Auth:    service.NewAuthService(users, hasher, tokens, service.SystemClock{}, log),
		Recipes: service.NewRecipeService(recipes, service.SystemClock{}, log),
		Users:   service.NewUserService(users, recipes, nil, 0, service.SystemClock{}, log),
		Guard:   service.NewGuard(tokens, users, log),
	}, Options{Logger: log, Registry: reg, Checks: checks})

	return &testServer{e: e, reg: reg}
}

// do sends a request and decodes the JSON body into a generic map.
func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func (s *testServer) register(t *testing.T, username, email string) {
	t.Helper()
	body := `{"username":"` + username + `","name":"Chef Test","email":"` + email + `","phone":"9876543210","password":"Passw0rd!"}`
	if code, resp := s.do(t, http.MethodPost, "/api/auth/register", "", body); code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d %v", username, code, resp)
	}
}

func (s *testServer) login(t *testing.T, identifier string) string {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"`+identifier+`","password":"Passw0rd!"}`)
	if code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d %v", identifier, code, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in %v", identifier, resp)
	}
	return token
}

func recipeField(t *testing.T, resp map[string]any, key string) any {
	t.Helper()
	recipe, ok := resp["recipe"].(map[string]any)
	if !ok {
		t.Fatalf("no recipe in %v", resp)
	}
	return recipe[key]
}

func TestRouter_ChefFlow(t *testing.T) {
	s := newTestServer(t, nil)

	s.register(t, "chef1", "chef1@example.com")
	s.register(t, "chef2", "chef2@example.com")
	token1 := s.login(t, "chef1")
	token2 := s.login(t, "CHEF2@example.com")

	code, resp := s.do(t, http.MethodPost, "/api/recipes", "", `{"title":"Pasta","type":"veg","ingredients":"pasta, tomato","instructions":"boil the pasta and add the sauce"}`)
	if code != http.StatusUnauthorized || resp["error"] != "authentication required" {
		t.Fatalf("anonymous create: expected 401, got %d %v", code, resp)
	}

	code, resp = s.do(t, http.MethodPost, "/api/recipes", token1, `{"title":"Pasta","type":"veg","ingredients":"pasta, tomato","instructions":"boil the pasta and add the sauce"}`)
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %v", code, resp)
	}
	id, _ := recipeField(t, resp, "id").(string)
	if recipeField(t, resp, "author") != "chef1" {
		t.Fatalf("create: unexpected author in %v", resp)
	}

	code, resp = s.do(t, http.MethodPut, "/api/recipes/"+id, token2, `{"title":"Hacked"}`)
	if code != http.StatusForbidden {
		t.Fatalf("foreign update: expected 403, got %d %v", code, resp)
	}
	code, resp = s.do(t, http.MethodGet, "/api/recipes/"+id, "", "")
	if code != http.StatusOK || recipeField(t, resp, "title") != "Pasta" {
		t.Fatalf("recipe changed by foreign update: %d %v", code, resp)
	}

	code, resp = s.do(t, http.MethodPut, "/api/recipes/"+id, token1, `{"title":"Better Pasta"}`)
	if code != http.StatusOK || recipeField(t, resp, "title") != "Better Pasta" {
		t.Fatalf("owner update: expected 200, got %d %v", code, resp)
	}

	// Listing is public, and an unusable token degrades to anonymous.
	for _, token := range []string{"", "not-a-token"} {
		code, resp = s.do(t, http.MethodGet, "/api/recipes?type=veg", token, "")
		if code != http.StatusOK || resp["totalCount"] != float64(1) {
			t.Fatalf("list with token %q: got %d %v", token, code, resp)
		}
	}

	code, resp = s.do(t, http.MethodGet, "/api/recipes/my/recipes", token2, "")
	if code != http.StatusOK || resp["count"] != float64(0) {
		t.Fatalf("chef2 recipes: got %d %v", code, resp)
	}
	code, resp = s.do(t, http.MethodGet, "/api/recipes/my/recipes", token1, "")
	if code != http.StatusOK || resp["count"] != float64(1) {
		t.Fatalf("chef1 recipes: got %d %v", code, resp)
	}

	if code, resp = s.do(t, http.MethodDelete, "/api/recipes/"+id, token2, ""); code != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d %v", code, resp)
	}
	if code, resp = s.do(t, http.MethodDelete, "/api/recipes/"+id, token1, ""); code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d %v", code, resp)
	}
	if code, resp = s.do(t, http.MethodGet, "/api/recipes/"+id, "", ""); code != http.StatusNotFound {
		t.Fatalf("deleted recipe: expected 404, got %d %v", code, resp)
	}

	code, resp = s.do(t, http.MethodGet, "/api/users/stats", "", "")
	stats, _ := resp["stats"].(map[string]any)
	if code != http.StatusOK || stats["totalUsers"] != float64(2) || stats["totalRecipes"] != float64(0) {
		t.Fatalf("stats: got %d %v", code, resp)
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "chef1", "chef1@example.com")

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "duplicate username",
			body:  `{"username":"chef1","name":"Chef Other","email":"other@example.com","phone":"9876543210","password":"Passw0rd!"}`,
			field: "username",
		},
		{
			name:  "duplicate email",
			body:  `{"username":"chef9","name":"Chef Other","email":"Chef1@Example.com","phone":"9876543210","password":"Passw0rd!"}`,
			field: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := s.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if code != http.StatusConflict {
				t.Fatalf("expected 409, got %d %v", code, resp)
			}
			fields, _ := resp["fields"].(map[string]any)
			if _, ok := fields[tt.field]; !ok || len(fields) != 1 {
				t.Fatalf("expected conflict on %q, got %v", tt.field, resp)
			}
		})
	}
}

func TestRouter_GuardedRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "chef1", "chef1@example.com")
	token := s.login(t, "chef1")

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
		wantErr  string
	}{
		{"profile without token", http.MethodGet, "/api/auth/profile", "", http.StatusUnauthorized, "authentication required"},
		{"profile with garbage token", http.MethodGet, "/api/auth/profile", "abc.def.ghi", http.StatusUnauthorized, "invalid token"},
		{"profile with token", http.MethodGet, "/api/auth/profile", token, http.StatusOK, ""},
		{"verify without token", http.MethodPost, "/api/auth/verify-token", "", http.StatusUnauthorized, "authentication required"},
		{"verify with token", http.MethodPost, "/api/auth/verify-token", token, http.StatusOK, ""},
		{"my recipes without token", http.MethodGet, "/api/recipes/my/recipes", "", http.StatusUnauthorized, "authentication required"},
		{"public list without token", http.MethodGet, "/api/recipes", "", http.StatusOK, ""},
		{"public profile", http.MethodGet, "/api/users/profile/chef1", "", http.StatusOK, ""},
		{"unknown profile", http.MethodGet, "/api/users/profile/nobody", "", http.StatusNotFound, "user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := s.do(t, tt.method, tt.path, tt.token, "")
			if code != tt.wantCode {
				t.Fatalf("expected %d, got %d %v", tt.wantCode, code, resp)
			}
			if tt.wantErr != "" && resp["error"] != tt.wantErr {
				t.Fatalf("expected error %q, got %v", tt.wantErr, resp)
			}
		})
	}
}

func TestRouter_ValidationAndQueryErrors(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := s.do(t, http.MethodPost, "/api/auth/register", "", `{"username":"ab","email":"nope"}`)
	if code != http.StatusBadRequest || resp["error"] != "validation failed" {
		t.Fatalf("register validation: got %d %v", code, resp)
	}
	fields, _ := resp["fields"].(map[string]any)
	for _, f := range []string{"username", "name", "email", "phone", "password"} {
		if _, ok := fields[f]; !ok {
			t.Fatalf("missing field error for %q in %v", f, fields)
		}
	}

	code, resp = s.do(t, http.MethodGet, "/api/recipes?limit=many", "", "")
	fields, _ = resp["fields"].(map[string]any)
	if code != http.StatusBadRequest || fields["limit"] == nil {
		t.Fatalf("bad limit: got %d %v", code, resp)
	}

	code, resp = s.do(t, http.MethodGet, "/api/users/search?q=c", "", "")
	if code != http.StatusBadRequest || resp["error"] != "search query must be at least 2 characters long" {
		t.Fatalf("short search: got %d %v", code, resp)
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t, map[string]handler.Check{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("dial tcp: connection refused") },
	})

	if code, _ := s.do(t, http.MethodGet, "/api/health", "", ""); code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", code)
	}
	code, resp := s.do(t, http.MethodGet, "/api/health/ready", "", "")
	if code != http.StatusServiceUnavailable || resp["status"] != "degraded" {
		t.Fatalf("readiness: got %d %v", code, resp)
	}
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "chef1", "chef1@example.com")
	s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"chef1","password":"wrong-password"}`)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`recipe_hub_auth_attempts_total{action="register",result="success"} 1`,
		`recipe_hub_auth_attempts_total{action="login",result="invalid_credentials"} 1`,
		`recipe_hub_http_requests_total`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
