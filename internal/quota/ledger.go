// AngelaMos | 2026
// ledger.go

package quota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type Subject string

const (
	SubjectTalent  Subject = "talent"
	SubjectCompany Subject = "company"
)

type ActionKind string

const ActionApplication ActionKind = "applications"

var ErrUnsupportedAction = errors.New("unsupported quota action")

// Principal identifies who is acting. Role may be empty for companies.
type Principal struct {
	Kind Subject
	ID   string
	Role string
}

// Limit is advisory. Concurrent submitters may both observe CanApply before
// either is counted; callers must not treat it as a reservation.
type Limit struct {
	Limit     int  `json:"limit"`
	Current   int  `json:"current"`
	Remaining int  `json:"remaining"`
	CanApply  bool `json:"can_apply"`
	Unlimited bool `json:"unlimited"`
}

type LimitSource interface {
	MonthlyLimit(ctx context.Context, key string) (int, error)
}

type ActionCounter interface {
	CountTalentApplications(ctx context.Context, userID string, since time.Time) (int, error)
	CountCompanyApplications(ctx context.Context, companyID string, since time.Time) (int, error)
}

type CompanyLookup interface {
	GetByID(ctx context.Context, id string) (*company.Company, error)
}

type Ledger struct {
	limits    LimitSource
	counter   ActionCounter
	companies CompanyLookup
	logger    *slog.Logger
	now       func() time.Time
}

func NewLedger(
	limits LimitSource,
	counter ActionCounter,
	companies CompanyLookup,
	logger *slog.Logger,
) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		limits:    limits,
		counter:   counter,
		companies: companies,
		logger:    logger,
		now:       time.Now,
	}
}

func SettingKey(action ActionKind, subject Subject, level tier.Level) string {
	return fmt.Sprintf("max_%s_per_month_%s_%s", action, subject, level)
}

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Check dispatches to the limit for action and principal kind. Unknown
// combinations are reported and fail open like any other lookup error.
func (l *Ledger) Check(ctx context.Context, p Principal, action ActionKind) Limit {
	if action == ActionApplication {
		switch p.Kind {
		case SubjectTalent:
			return l.CheckTalentApplicationLimit(ctx, p.ID, p.Role)
		case SubjectCompany:
			return l.CheckCompanyApplicationLimit(ctx, p.ID, p.Role)
		}
	}

	err := fmt.Errorf("check %s for %s: %w", action, p.Kind, ErrUnsupportedAction)
	return l.failOpen(ctx, err, "principal_id", p.ID)
}

func (l *Ledger) CheckTalentApplicationLimit(
	ctx context.Context,
	userID string,
	role string,
) Limit {
	ctx, span := core.StartSpan(ctx, "quota.CheckTalentApplicationLimit",
		attribute.String("user.id", userID),
	)
	defer span.End()

	level := tier.LevelOf(role)
	limit, err := l.check(ctx, SettingKey(ActionApplication, SubjectTalent, level),
		func(since time.Time) (int, error) {
			return l.counter.CountTalentApplications(ctx, userID, since)
		})
	if err != nil {
		return l.failOpen(ctx, err, "user_id", userID, "role", role)
	}

	return limit
}

// CheckCompanyApplicationLimit uses the company's stored status when role is
// empty.
func (l *Ledger) CheckCompanyApplicationLimit(
	ctx context.Context,
	companyID string,
	role string,
) Limit {
	ctx, span := core.StartSpan(ctx, "quota.CheckCompanyApplicationLimit",
		attribute.String("company.id", companyID),
	)
	defer span.End()

	level := tier.LevelOf(role)
	if role == "" {
		c, err := l.companies.GetByID(ctx, companyID)
		if err != nil {
			return l.failOpen(ctx, err, "company_id", companyID)
		}
		level = tier.LevelFreemium
		if c.IsPremium() {
			level = tier.LevelPremium
		}
	}

	limit, err := l.check(ctx, SettingKey(ActionApplication, SubjectCompany, level),
		func(since time.Time) (int, error) {
			return l.counter.CountCompanyApplications(ctx, companyID, since)
		})
	if err != nil {
		return l.failOpen(ctx, err, "company_id", companyID, "role", role)
	}

	return limit
}

func (l *Ledger) check(
	ctx context.Context,
	key string,
	count func(since time.Time) (int, error),
) (Limit, error) {
	allowed, err := l.limits.MonthlyLimit(ctx, key)
	if err != nil {
		return Limit{}, fmt.Errorf("read limit %s: %w", key, err)
	}

	if allowed == 0 {
		return Limit{CanApply: true, Unlimited: true}, nil
	}

	current, err := count(MonthStart(l.now()))
	if err != nil {
		return Limit{}, fmt.Errorf("count actions: %w", err)
	}

	return Limit{
		Limit:     allowed,
		Current:   current,
		Remaining: max(0, allowed-current),
		CanApply:  current < allowed,
	}, nil
}

func (l *Ledger) failOpen(ctx context.Context, err error, args ...any) Limit {
	core.SetSpanError(ctx, err)
	l.logger.WarnContext(ctx, "quota check failed, allowing action",
		append(args, "error", err)...,
	)
	return Limit{CanApply: true}
}
