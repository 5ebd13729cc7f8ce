// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type mapVerifier map[string]*AccessTokenClaims

func (m mapVerifier) VerifyAccessToken(_ context.Context, token string) (*AccessTokenClaims, error) {
	if token == "expired" {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
	}
	claims, ok := m[token]
	if !ok {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

var testVerifier = mapVerifier{
	"talent": {UserID: "u-talent", Role: tier.FreemiumTalent, EmailConfirmed: true},
	"admin":  {UserID: "u-admin", Role: tier.Admin, EmailConfirmed: true},
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(GetUserID(r.Context()) + "|" + GetUserRole(r.Context()).String()))
}

func request(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	h := Authenticator(testVerifier)(http.HandlerFunc(echoUser))

	tests := []struct {
		name     string
		token    string
		wantCode int
		wantBody string
	}{
		{name: "valid", token: "talent", wantCode: http.StatusOK, wantBody: "u-talent|freemium_talent"},
		{name: "missing", wantCode: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "expired", token: "expired", wantCode: http.StatusUnauthorized, wantBody: "TOKEN_EXPIRED"},
		{name: "unknown", token: "forged", wantCode: http.StatusUnauthorized, wantBody: "TOKEN_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(h, tt.token)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	h := OptionalAuth(testVerifier)(http.HandlerFunc(echoUser))

	assert.Equal(t, "|", request(h, "").Body.String())
	assert.Equal(t, "|", request(h, "forged").Body.String())
	assert.Equal(t, "u-admin|admin", request(h, "admin").Body.String())
}

func TestRequireRole(t *testing.T) {
	h := OptionalAuth(testVerifier)(
		RequireRole(tier.FreemiumTalent, tier.PremiumTalent)(http.HandlerFunc(echoUser)),
	)

	assert.Equal(t, http.StatusOK, request(h, "talent").Code)
	assert.Equal(t, http.StatusForbidden, request(h, "admin").Code)
	assert.Equal(t, http.StatusUnauthorized, request(h, "").Code)
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "bearer  abc ")
	assert.Equal(t, "abc", ExtractToken(req))
}

func TestTieredRateLimiterFallsBackLocally(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	tiers := map[tier.Level]TierConfig{
		tier.LevelFreemium: {RequestsPerMinute: 1, BurstSize: 1},
	}
	h := OptionalAuth(testVerifier)(TieredRateLimiter(rdb, tiers)(http.HandlerFunc(echoUser)))

	first := request(h, "talent")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "freemium", first.Header().Get("X-RateLimit-Tier"))

	second := request(h, "talent")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")

	for range 3 {
		assert.Equal(t, http.StatusOK, request(h, "admin").Code)
	}
}
