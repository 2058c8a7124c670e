package service

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

const testSecret = "test-signing-secret"

func newTestTokenService(t *testing.T, clock Clock) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, clock)
	require.NoError(t, err)
	return ts
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	clock := newFakeClock(baseTime)
	ts := newTestTokenService(t, clock)

	token, err := ts.Issue("user-1", "chef1")
	require.NoError(t, err)

	clock.Advance(time.Second)
	claims, err := ts.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "chef1", claims.Username)
	require.True(t, claims.IssuedAt.Equal(baseTime))
	require.True(t, claims.ExpiresAt.Equal(baseTime.Add(7*24*time.Hour)))
}

func TestTokenService_Expiry(t *testing.T) {
	clock := newFakeClock(baseTime)
	ts := newTestTokenService(t, clock)

	token, err := ts.Issue("user-1", "chef1")
	require.NoError(t, err)

	clock.Advance(TokenLifetime - time.Second)
	_, err = ts.Verify(token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = ts.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenExpired, "a token is expired once now reaches exp")

	clock.Advance(time.Second)
	_, err = ts.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
	require.NotErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	clock := newFakeClock(baseTime)
	ts := newTestTokenService(t, clock)

	forger, err := NewTokenService("some-other-secret", clock)
	require.NoError(t, err)

	genuine, err := ts.Issue("user-1", "chef1")
	require.NoError(t, err)
	forged, err := forger.Issue("user-1", "chef1")
	require.NoError(t, err)

	parts := strings.Split(genuine, ".")
	forgedSig := strings.Split(forged, ".")[2]
	tampered := parts[0] + "." + parts[1] + "." + forgedSig

	_, err = ts.Verify(tampered)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	// an expired payload with a bad signature is still reported as invalid
	clock.Advance(TokenLifetime + time.Hour)
	_, err = ts.Verify(tampered)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
	require.NotErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenService_TamperedClaims(t *testing.T) {
	ts := newTestTokenService(t, newFakeClock(baseTime))

	token, err := ts.Issue("user-1", "chef1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	claims["userId"] = "user-2"
	claims["username"] = "chef2"
	modified, err := json.Marshal(claims)
	require.NoError(t, err)

	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString(modified) + "." + parts[2]
	_, err = ts.Verify(tampered)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsMalformedAndUnsigned(t *testing.T) {
	ts := newTestTokenService(t, newFakeClock(baseTime))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId":   "user-1",
		"username": "chef1",
		"exp":      baseTime.Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", "a.b.c", unsigned} {
		_, err := ts.Verify(token)
		require.ErrorIs(t, err, domain.ErrTokenInvalid, "token %q", token)
	}
}

func TestTokenService_RejectsMissingIdentityClaims(t *testing.T) {
	ts := newTestTokenService(t, newFakeClock(baseTime))

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			name: "no user fields",
			claims: jwt.MapClaims{
				"exp": baseTime.Add(time.Hour).Unix(),
				"iat": baseTime.Unix(),
			},
		},
		{
			name: "no issued-at",
			claims: jwt.MapClaims{
				"userId":   "user-1",
				"username": "chef1",
				"exp":      baseTime.Add(time.Hour).Unix(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			require.NotPanics(t, func() {
				_, err = ts.Verify(signed)
			})
			require.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestTokenService_Construction(t *testing.T) {
	_, err := NewTokenService("", nil)
	require.Error(t, err)

	ts := newTestTokenService(t, nil)
	_, err = ts.Issue("", "chef1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ts.Issue("user-1", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Known limitation: there is no revocation or refresh. A token stays valid
// for its full lifetime no matter what happens to the account meanwhile.
func TestTokenService_NoRevocation_KnownLimitation(t *testing.T) {
	clock := newFakeClock(baseTime)
	ts := newTestTokenService(t, clock)

	token, err := ts.Issue("user-1", "chef1")
	require.NoError(t, err)

	for _, elapsed := range []time.Duration{time.Minute, 24 * time.Hour, 6 * 24 * time.Hour} {
		clock.now = baseTime.Add(elapsed)
		_, err := ts.Verify(token)
		require.NoError(t, err, "still trusted after %s", elapsed)
	}
}
