// AngelaMos | 2026
// verifier.go

package testutil

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

// StaticVerifier resolves bearer tokens from a fixed table. A token is
// registered under its own string, so "Bearer admin" maps to Tokens["admin"].
type StaticVerifier struct {
	Tokens map[string]*middleware.AccessTokenClaims
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{Tokens: map[string]*middleware.AccessTokenClaims{}}
}

// Add registers a confirmed user and returns the token to send.
func (v *StaticVerifier) Add(token, userID string, role tier.RoleTier) string {
	v.Tokens[token] = &middleware.AccessTokenClaims{
		UserID:         userID,
		Role:           role,
		EmailConfirmed: true,
	}
	return token
}

func (v *StaticVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, ok := v.Tokens[token]
	if !ok {
		return nil, fmt.Errorf("static verifier: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func Authorize(r *http.Request, token string) *http.Request {
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}
