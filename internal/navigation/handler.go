// AngelaMos | 2026
// handler.go

package navigation

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
	"github.com/carterperez-dev/talenthub/internal/profile"
)

type StateSource interface {
	State(ctx context.Context, userID string) (profile.State, error)
}

type Handler struct {
	states            StateSource
	protectedPrefixes []string
	redirectDelay     time.Duration
}

func NewHandler(
	states StateSource,
	protectedPrefixes []string,
	redirectDelay time.Duration,
) *Handler {
	return &Handler{
		states:            states,
		protectedPrefixes: protectedPrefixes,
		redirectDelay:     redirectDelay,
	}
}

// ResolveResponse tells the client how long to debounce before acting on
// Redirect, so every shell uses the same delay as Redirector.
type ResolveResponse struct {
	Decision
	RedirectDelayMS int64 `json:"redirect_delay_ms"`
}

// RegisterRoutes mounts the resolver behind optional auth; anonymous callers
// get the registration route.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/navigation", func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/resolve", h.Resolve)
	})
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path := r.URL.Query().Get("path")
	if path == "" {
		core.BadRequest(w, "path is required")
		return
	}

	recovery, err := parseBoolQuery(r, "recovery")
	if err != nil {
		core.BadRequest(w, "recovery must be a boolean")
		return
	}

	session := Session{}
	if claims := middleware.GetClaims(ctx); claims != nil {
		session = Session{
			Authenticated:  true,
			Role:           claims.Role,
			EmailConfirmed: claims.EmailConfirmed,
		}
	}

	state := profile.StateNew
	if session.Authenticated && session.Role.IsTalent() {
		state, err = h.states.State(ctx, middleware.GetUserID(ctx))
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
	}

	decision := Decide(session, state, path, Guards{
		RecoveryInProgress: recovery,
		ProtectedPrefixes:  h.protectedPrefixes,
	})

	core.OK(w, ResolveResponse{
		Decision:        decision,
		RedirectDelayMS: h.redirectDelay.Milliseconds(),
	})
}

func parseBoolQuery(r *http.Request, key string) (bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return false, nil
	}
	return strconv.ParseBool(val)
}
