// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/talenthub/internal/cascade"
	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
)

type Cascader interface {
	ApplySubscriptionChange(
		ctx context.Context,
		change cascade.SubscriptionChange,
	) (*cascade.SubscriptionResult, error)
	ApplyAcademyStudentPremiumToggle(
		ctx context.Context,
		toggle cascade.AcademyToggle,
	) (*cascade.AcademyResult, error)
}

type MembershipApprover interface {
	ApproveMembership(
		ctx context.Context,
		companyID, userID, actorID string,
	) (*company.Approval, error)
}

type Handler struct {
	cascader  Cascader
	approver  MembershipApprover
	validator *validator.Validate
}

func NewHandler(cascader Cascader, approver MembershipApprover) *Handler {
	return &Handler{
		cascader:  cascader,
		approver:  approver,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/change-company-subscription", h.ChangeCompanySubscription)
		r.Post("/bulk-update-academy-students", h.BulkUpdateAcademyStudents)
		r.Post(
			"/companies/{companyID}/members/{userID}/approve",
			h.ApproveMembership,
		)
	})
}

// ChangeCompanySubscription returns 200 even when some members failed; the
// caller reads membersFailed and retries.
func (h *Handler) ChangeCompanySubscription(w http.ResponseWriter, r *http.Request) {
	var req ChangeSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.cascader.ApplySubscriptionChange(r.Context(), cascade.SubscriptionChange{
		CompanyID:    req.CompanyID,
		Subscription: cascade.Subscription(req.NewSubscription),
		ActorID:      middleware.GetUserID(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "company")
		case errors.Is(err, cascade.ErrInvalidSubscription):
			core.BadRequest(w, "newSubscription must be freemium or premium")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToChangeSubscriptionResponse(res))
}

func (h *Handler) BulkUpdateAcademyStudents(w http.ResponseWriter, r *http.Request) {
	var req BulkAcademyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.cascader.ApplyAcademyStudentPremiumToggle(r.Context(), cascade.AcademyToggle{
		AcademyID:     req.AcademyID,
		EnablePremium: *req.EnablePremium,
		ActorID:       middleware.GetUserID(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "academy")
		case errors.Is(err, cascade.ErrNotAcademy):
			core.BadRequest(w, "company is not an academy")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToBulkAcademyResponse(res))
}

func (h *Handler) ApproveMembership(w http.ResponseWriter, r *http.Request) {
	approval, err := h.approver.ApproveMembership(
		r.Context(),
		chi.URLParam(r, "companyID"),
		chi.URLParam(r, "userID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "membership")
		case errors.Is(err, company.ErrMembershipNotPending):
			core.JSONError(w, core.NewAppError(
				"CONFLICT",
				"membership is not pending",
				http.StatusConflict,
				err,
			))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToApprovalResponse(approval))
}
