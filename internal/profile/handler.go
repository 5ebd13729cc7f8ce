// AngelaMos | 2026
// handler.go

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole(tier.FreemiumTalent, tier.PremiumTalent))

		r.Get("/state", h.GetState)
	})
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	eval, err := h.service.Evaluate(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, eval)
}
