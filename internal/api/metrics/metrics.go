// Package metrics defines the application Prometheus metrics: authentication
// outcomes, token verification results and recipe mutations.
//
// Metrics are registered on the Registerer passed to New so that tests can use
// a private registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

const namespace = "recipe_hub"

type Metrics struct {
	// AuthAttempts counts register and login calls.
	// Labels:
	//   - action: "register" or "login"
	//   - result: "success", "conflict", "invalid_credentials", "invalid_input" or "error"
	AuthAttempts *prometheus.CounterVec

	// TokenVerifications counts bearer token checks on protected routes.
	// Label:
	//   - result: "valid", "expired", "invalid", "rejected" or "error"
	TokenVerifications *prometheus.CounterVec

	// RecipeMutations counts create, update and delete calls.
	// Labels:
	//   - op: "create", "update" or "delete"
	//   - result: "success", "forbidden", "not_found", "invalid_input" or "error"
	RecipeMutations *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of register and login attempts, by outcome.",
			},
			[]string{"action", "result"},
		),
		TokenVerifications: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_verifications_total",
				Help:      "Total number of bearer token verifications, by outcome.",
			},
			[]string{"result"},
		),
		RecipeMutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipe_mutations_total",
				Help:      "Total number of recipe create, update and delete calls, by outcome.",
			},
			[]string{"op", "result"},
		),
	}
}

func (m *Metrics) ObserveAuth(action string, err error) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(action, result(err)).Inc()
}

func (m *Metrics) ObserveToken(err error) {
	if m == nil {
		return
	}
	var r string
	switch {
	case err == nil:
		r = "valid"
	case errors.Is(err, domain.ErrTokenExpired):
		r = "expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		r = "invalid"
	case errors.Is(err, domain.ErrUnauthenticated):
		r = "rejected"
	default:
		r = "error"
	}
	m.TokenVerifications.WithLabelValues(r).Inc()
}

func (m *Metrics) ObserveRecipe(op string, err error) {
	if m == nil {
		return
	}
	m.RecipeMutations.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrRecipeNotFound), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidID):
		return "invalid_input"
	default:
		return "error"
	}
}
