// AngelaMos | 2026
// handler.go

package quota

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type CompanyDirectory interface {
	CompanyLookup
	GetMembership(ctx context.Context, companyID, userID string) (*company.Membership, error)
}

type Handler struct {
	ledger    *Ledger
	companies CompanyDirectory
}

func NewHandler(ledger *Ledger, companies CompanyDirectory) *Handler {
	return &Handler{ledger: ledger, companies: companies}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequireRole(tier.FreemiumTalent, tier.PremiumTalent)).
			Get("/quota/applications", h.GetTalentApplicationLimit)

		r.With(middleware.RequireRole(
			tier.FreemiumBusiness,
			tier.PremiumBusiness,
			tier.AcademyPremium,
			tier.Admin,
		)).Get("/companies/{companyID}/quota/applications", h.GetCompanyApplicationLimit)
	})
}

func (h *Handler) GetTalentApplicationLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := h.ledger.CheckTalentApplicationLimit(
		ctx,
		middleware.GetUserID(ctx),
		middleware.GetUserRole(ctx).String(),
	)

	core.OK(w, limit)
}

// GetCompanyApplicationLimit is open to admins and to accepted members of the
// company. The optional role query overrides the company's stored status.
// Only quota lookups fail open; an unknown company is a 404.
func (h *Handler) GetCompanyApplicationLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")

	if _, err := uuid.Parse(companyID); err != nil {
		core.BadRequest(w, "invalid company id")
		return
	}

	if _, err := h.companies.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "company")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if !middleware.IsAdmin(ctx) {
		m, err := h.companies.GetMembership(ctx, companyID, middleware.GetUserID(ctx))
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			core.InternalServerError(w, err)
			return
		}
		if m == nil || m.Status != company.MembershipAccepted {
			core.Forbidden(w, "not a member of this company")
			return
		}
	}

	limit := h.ledger.CheckCompanyApplicationLimit(
		ctx,
		companyID,
		r.URL.Query().Get("role"),
	)

	core.OK(w, limit)
}
