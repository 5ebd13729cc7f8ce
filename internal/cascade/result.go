// AngelaMos | 2026
// result.go

package cascade

import (
	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type SkipReason string

const (
	SkipAdmin         SkipReason = "platform admin"
	SkipAlreadyTarget SkipReason = "already at target role"
	SkipNotTalent     SkipReason = "not on a talent tier"
	SkipNoAccount     SkipReason = "no user account"
)

type MemberFailure struct {
	Member string
	Err    error
}

type MemberSkip struct {
	Member string
	Reason SkipReason
}

// Result partitions every attempted member into exactly one of three lists.
// Order within each list follows processing order.
type Result struct {
	Succeeded []string
	Failed    []string
	Skipped   []string
	Failures  []MemberFailure
	Skips     []MemberSkip
}

func (r *Result) succeed(member string) {
	r.Succeeded = append(r.Succeeded, member)
}

func (r *Result) fail(member string, err error) {
	r.Failed = append(r.Failed, member)
	r.Failures = append(r.Failures, MemberFailure{Member: member, Err: err})
}

func (r *Result) skip(member string, reason SkipReason) {
	r.Skipped = append(r.Skipped, member)
	r.Skips = append(r.Skips, MemberSkip{Member: member, Reason: reason})
}

func (r *Result) Total() int {
	return len(r.Succeeded) + len(r.Failed) + len(r.Skipped)
}

type CompanySummary struct {
	ID            string
	Name          string
	OldStatus     company.Status
	NewStatus     company.Status
	NewMemberRole tier.RoleTier
}

type SubscriptionResult struct {
	Company CompanySummary
	Result
}

type AcademyResult struct {
	AcademyID     string
	EnablePremium bool
	TargetRole    tier.RoleTier
	TotalStudents int
	Result
}
