// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/config"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

var testJWTConfig = config.JWTConfig{
	Issuer:   "talenthub-identity",
	Audience: "talenthub-api",
}

type signer struct {
	key jwk.Key
}

func newTestVerifier(t *testing.T) (*Verifier, *signer) {
	t.Helper()

	raw, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	private, err := jwk.Import(raw)
	require.NoError(t, err)

	public, err := private.PublicKey()
	require.NoError(t, err)

	publicPEM, err := jwk.Pem(public)
	require.NoError(t, err)

	v, err := NewVerifierFromPEM(publicPEM, testJWTConfig)
	require.NoError(t, err)

	return v, &signer{key: private}
}

func (s *signer) sign(t *testing.T, mutate func(b *jwt.Builder) *jwt.Builder) string {
	t.Helper()

	now := time.Now()
	b := jwt.NewBuilder().
		Issuer(testJWTConfig.Issuer).
		Audience([]string{testJWTConfig.Audience}).
		Subject("9d0c3a3e-8f57-4c1e-a43b-3c9f0f3e7a11").
		IssuedAt(now).
		Expiration(now.Add(15*time.Minute)).
		Claim("role", "admin").
		Claim("email_confirmed", true).
		Claim("type", "access")
	if mutate != nil {
		b = mutate(b)
	}

	token, err := b.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), s.key))
	require.NoError(t, err)

	return string(signed)
}

func TestVerifyAccessToken(t *testing.T) {
	v, s := newTestVerifier(t)

	claims, err := v.VerifyAccessToken(context.Background(), s.sign(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "9d0c3a3e-8f57-4c1e-a43b-3c9f0f3e7a11", claims.UserID)
	assert.Equal(t, tier.Admin, claims.Role)
	assert.True(t, claims.EmailConfirmed)
}

func TestVerifyAccessTokenRejects(t *testing.T) {
	v, s := newTestVerifier(t)
	_, other := newTestVerifier(t)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name: "expired",
			token: s.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Expiration(time.Now().Add(-time.Hour))
			}),
			wantErr: core.ErrTokenExpired,
		},
		{
			name: "refresh token type",
			token: s.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Claim("type", "refresh")
			}),
			wantErr: core.ErrTokenInvalid,
		},
		{
			name: "unknown role",
			token: s.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Claim("role", "superuser")
			}),
			wantErr: core.ErrTokenInvalid,
		},
		{
			name: "wrong audience",
			token: s.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Audience([]string{"someone-else"})
			}),
			wantErr: core.ErrTokenInvalid,
		},
		{
			name:    "foreign signing key",
			token:   other.sign(t, nil),
			wantErr: core.ErrTokenInvalid,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: core.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyAccessToken(context.Background(), tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestVerifyAccessTokenMissingEmailClaim(t *testing.T) {
	v, s := newTestVerifier(t)

	token := s.sign(t, func(b *jwt.Builder) *jwt.Builder {
		return b.Claim("role", "freemium_talent").Claim("email_confirmed", false)
	})

	claims, err := v.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, tier.FreemiumTalent, claims.Role)
	assert.False(t, claims.EmailConfirmed)
}

func TestJWKSHandler(t *testing.T) {
	v, _ := newTestVerifier(t)

	rec := httptest.NewRecorder()
	v.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kty":"EC"`)
}
