// AngelaMos | 2026
// engine.go

package cascade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

var (
	ErrInvalidSubscription = errors.New("subscription must be freemium or premium")
	ErrNotAcademy          = errors.New("company is not an academy")
	ErrMissingActor        = errors.New("acting admin is required")
)

type Subscription string

const (
	SubscriptionFreemium Subscription = "freemium"
	SubscriptionPremium  Subscription = "premium"
)

func ParseSubscription(s string) (Subscription, error) {
	switch Subscription(s) {
	case SubscriptionFreemium, SubscriptionPremium:
		return Subscription(s), nil
	default:
		return "", fmt.Errorf("parse subscription %q: %w", s, ErrInvalidSubscription)
	}
}

// Status is the company status a subscription level is stored as.
func (s Subscription) Status() company.Status {
	if s == SubscriptionPremium {
		return company.StatusPremium
	}
	return company.StatusActive
}

type CompanyStore interface {
	GetByID(ctx context.Context, id string) (*company.Company, error)
	UpdateStatus(ctx context.Context, id string, status company.Status) error
	ListAcceptedMemberIDs(ctx context.Context, companyID string) ([]string, error)
	ListActiveStudentEmails(ctx context.Context, academyID string) ([]string, error)
}

type RoleStore interface {
	GetRole(ctx context.Context, userID string) (tier.RoleTier, error)
	FindByEmail(ctx context.Context, email string) (string, tier.RoleTier, error)
	// ChangeRole writes the new role and its audit entry atomically.
	ChangeRole(ctx context.Context, entry *audit.Entry) error
}

// Engine propagates company subscription changes to member roles.
//
// Members are processed one at a time: audit rows land in a deterministic
// order and a failing member only affects itself. There is no transaction
// across members; a partial result is returned for the caller to retry, and
// re-running converges because already-correct members are skipped.
type Engine struct {
	companies CompanyStore
	roles     RoleStore
	logger    *slog.Logger
}

func NewEngine(companies CompanyStore, roles RoleStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{companies: companies, roles: roles, logger: logger}
}

type SubscriptionChange struct {
	CompanyID    string
	Subscription Subscription
	ActorID      string
}

func (e *Engine) ApplySubscriptionChange(
	ctx context.Context,
	change SubscriptionChange,
) (*SubscriptionResult, error) {
	if _, err := ParseSubscription(string(change.Subscription)); err != nil {
		return nil, err
	}
	if change.ActorID == "" {
		return nil, ErrMissingActor
	}

	ctx, span := core.StartSpan(ctx, "cascade.ApplySubscriptionChange",
		attribute.String("company.id", change.CompanyID),
		attribute.String("subscription", string(change.Subscription)),
	)
	defer span.End()

	c, err := e.companies.GetByID(ctx, change.CompanyID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("apply subscription change: %w", err)
	}

	newStatus := change.Subscription.Status()
	target := tier.Resolve(
		tier.KindBusiness,
		change.Subscription == SubscriptionPremium,
		c.IsAcademy(),
	)

	if err := e.companies.UpdateStatus(ctx, c.ID, newStatus); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("apply subscription change: %w", err)
	}

	memberIDs, err := e.companies.ListAcceptedMemberIDs(ctx, c.ID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("apply subscription change: %w", err)
	}

	out := &SubscriptionResult{
		Company: CompanySummary{
			ID:            c.ID,
			Name:          c.Name,
			OldStatus:     c.Status,
			NewStatus:     newStatus,
			NewMemberRole: target,
		},
	}

	for _, userID := range memberIDs {
		current, getErr := e.roles.GetRole(ctx, userID)
		if getErr != nil {
			e.recordFailure(ctx, &out.Result, userID, getErr)
			continue
		}

		e.converge(ctx, &out.Result, memberUpdate{
			member:  userID,
			userID:  userID,
			current: current,
			target:  target,
			actorID: change.ActorID,
			reason:  audit.ReasonSubscriptionChange,
		})
	}

	span.SetAttributes(
		attribute.Int("members.updated", len(out.Succeeded)),
		attribute.Int("members.failed", len(out.Failed)),
		attribute.Int("members.skipped", len(out.Skipped)),
	)
	e.logger.InfoContext(ctx, "subscription cascade applied",
		"company_id", c.ID,
		"old_status", c.Status,
		"new_status", newStatus,
		"target_role", target,
		"updated", len(out.Succeeded),
		"failed", len(out.Failed),
		"skipped", len(out.Skipped),
	)

	return out, nil
}

type AcademyToggle struct {
	AcademyID     string
	EnablePremium bool
	ActorID       string
}

// ApplyAcademyStudentPremiumToggle grants or revokes premium talent tiers for
// an academy's active students. Students on non-talent tiers are never moved
// onto a talent tier by this path.
func (e *Engine) ApplyAcademyStudentPremiumToggle(
	ctx context.Context,
	toggle AcademyToggle,
) (*AcademyResult, error) {
	if toggle.ActorID == "" {
		return nil, ErrMissingActor
	}

	ctx, span := core.StartSpan(ctx, "cascade.ApplyAcademyStudentPremiumToggle",
		attribute.String("academy.id", toggle.AcademyID),
		attribute.Bool("enable_premium", toggle.EnablePremium),
	)
	defer span.End()

	academy, err := e.companies.GetByID(ctx, toggle.AcademyID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("toggle academy premium: %w", err)
	}
	if !academy.IsAcademy() {
		return nil, fmt.Errorf("toggle academy premium %s: %w", academy.ID, ErrNotAcademy)
	}

	emails, err := e.companies.ListActiveStudentEmails(ctx, academy.ID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("toggle academy premium: %w", err)
	}

	target := tier.Resolve(tier.KindTalent, toggle.EnablePremium, false)
	out := &AcademyResult{
		AcademyID:     academy.ID,
		EnablePremium: toggle.EnablePremium,
		TargetRole:    target,
		TotalStudents: len(emails),
	}

	for _, email := range emails {
		userID, current, findErr := e.roles.FindByEmail(ctx, email)
		if findErr != nil {
			if errors.Is(findErr, core.ErrNotFound) {
				out.skip(email, SkipNoAccount)
				continue
			}
			e.recordFailure(ctx, &out.Result, email, findErr)
			continue
		}

		if !current.IsTalent() {
			reason := SkipNotTalent
			if current.IsAdmin() {
				reason = SkipAdmin
			}
			out.skip(email, reason)
			continue
		}

		e.converge(ctx, &out.Result, memberUpdate{
			member:  email,
			userID:  userID,
			current: current,
			target:  target,
			actorID: toggle.ActorID,
			reason:  audit.ReasonAcademyToggle,
		})
	}

	span.SetAttributes(
		attribute.Int("students.total", out.TotalStudents),
		attribute.Int("students.updated", len(out.Succeeded)),
		attribute.Int("students.failed", len(out.Failed)),
		attribute.Int("students.skipped", len(out.Skipped)),
	)
	e.logger.InfoContext(ctx, "academy premium toggle applied",
		"academy_id", academy.ID,
		"enable_premium", toggle.EnablePremium,
		"total", out.TotalStudents,
		"updated", len(out.Succeeded),
		"failed", len(out.Failed),
		"skipped", len(out.Skipped),
	)

	return out, nil
}

type memberUpdate struct {
	member  string
	userID  string
	current tier.RoleTier
	target  tier.RoleTier
	actorID string
	reason  string
}

func (e *Engine) converge(ctx context.Context, res *Result, u memberUpdate) {
	switch {
	case u.current.IsAdmin():
		res.skip(u.member, SkipAdmin)
		return
	case u.current == u.target:
		res.skip(u.member, SkipAlreadyTarget)
		return
	}

	entry := &audit.Entry{
		UserID:    u.userID,
		ChangedBy: u.actorID,
		OldRole:   u.current,
		NewRole:   u.target,
		Reason:    u.reason,
	}
	if err := e.roles.ChangeRole(ctx, entry); err != nil {
		e.recordFailure(ctx, res, u.member, err)
		return
	}

	res.succeed(u.member)
}

func (e *Engine) recordFailure(ctx context.Context, res *Result, member string, err error) {
	res.fail(member, err)
	core.AddSpanEvent(ctx, "member_update_failed",
		attribute.String("member", member),
		attribute.String("error", err.Error()),
	)
	e.logger.WarnContext(ctx, "cascade member update failed",
		"member", member,
		"error", err,
	)
}
