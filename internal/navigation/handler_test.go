// AngelaMos | 2026
// handler_test.go

package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/middleware"
	"github.com/carterperez-dev/talenthub/internal/profile"
	"github.com/carterperez-dev/talenthub/internal/testutil"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type fakeStates map[string]profile.State

func (f fakeStates) State(_ context.Context, userID string) (profile.State, error) {
	s, ok := f[userID]
	if !ok {
		return profile.StateNew, errors.New("signals unavailable")
	}
	return s, nil
}

func TestResolve(t *testing.T) {
	verifier := testutil.NewStaticVerifier()
	newTalent := verifier.Add("new", "talent-1", tier.FreemiumTalent)
	established := verifier.Add("established", "talent-2", tier.PremiumTalent)
	business := verifier.Add("biz", "biz-1", tier.PremiumBusiness)
	broken := verifier.Add("broken", "talent-3", tier.FreemiumTalent)
	unconfirmed := verifier.Add("unconfirmed", "talent-4", tier.FreemiumTalent)
	verifier.Tokens[unconfirmed].EmailConfirmed = false

	states := fakeStates{
		"talent-1": profile.StateNew,
		"talent-2": profile.StateEstablished,
	}

	r := chi.NewRouter()
	NewHandler(states, defaultProtected, 150*time.Millisecond).RegisterRoutes(r, middleware.OptionalAuth(verifier))

	tests := []struct {
		name       string
		token      string
		query      string
		wantStatus int
		want       Decision
	}{
		{
			name:       "anonymous",
			query:      "path=/dashboard",
			wantStatus: http.StatusOK,
			want:       Decision{FlowState: FlowDashboard, CanonicalRoute: RouteRegistration, Redirect: true},
		},
		{
			name:       "new talent",
			token:      newTalent,
			query:      "path=/dashboard",
			wantStatus: http.StatusOK,
			want:       Decision{FlowState: FlowDashboard, CanonicalRoute: RouteOnboarding, Redirect: true},
		},
		{
			name:       "established talent on settings",
			token:      established,
			query:      "path=/settings/profile",
			wantStatus: http.StatusOK,
			want:       Decision{FlowState: FlowDashboard, CanonicalRoute: RouteDashboard, Redirect: false},
		},
		{
			name:       "business during recovery",
			token:      business,
			query:      "path=/onboarding&recovery=true",
			wantStatus: http.StatusOK,
			want:       Decision{FlowState: FlowOnboarding, CanonicalRoute: RouteBusinessDashboard, Redirect: false},
		},
		{
			name:       "unconfirmed email",
			token:      unconfirmed,
			query:      "path=/dashboard",
			wantStatus: http.StatusOK,
			want:       Decision{FlowState: FlowDashboard, CanonicalRoute: RouteEmailVerification, Redirect: true},
		},
		{name: "missing path", token: newTalent, query: "", wantStatus: http.StatusBadRequest},
		{name: "bad recovery flag", token: newTalent, query: "path=/x&recovery=maybe", wantStatus: http.StatusBadRequest},
		{name: "state lookup fails", token: broken, query: "path=/dashboard", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/navigation/resolve?"+tt.query, nil)
			r.ServeHTTP(rec, testutil.Authorize(req, tt.token))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Data ResolveResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Data.Decision)
			assert.Equal(t, int64(150), body.Data.RedirectDelayMS)
		})
	}
}
