// AngelaMos | 2026
// service.go

package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

var ErrMembershipNotPending = errors.New("membership is not pending")

type RoleReader interface {
	GetRole(ctx context.Context, userID string) (tier.RoleTier, error)
}

type Service struct {
	repo     Repository
	roles    RoleReader
	acceptor MembershipAcceptor
}

func NewService(repo Repository, roles RoleReader, acceptor MembershipAcceptor) *Service {
	return &Service{repo: repo, roles: roles, acceptor: acceptor}
}

type Approval struct {
	Membership  *Membership
	OldRole     tier.RoleTier
	NewRole     tier.RoleTier
	RoleChanged bool
}

// ApproveMembership accepts a pending membership and gives the member the
// role their company's subscription entitles them to. Platform admins keep
// their role. Status and role commit together; on failure the membership
// stays pending and the approval can be retried.
func (s *Service) ApproveMembership(
	ctx context.Context,
	companyID, userID, actorID string,
) (*Approval, error) {
	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetMembership(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	if m.Status != MembershipPending {
		return nil, fmt.Errorf("approve membership %s: %w", m.ID, ErrMembershipNotPending)
	}

	current, err := s.roles.GetRole(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("approve membership: %w", err)
	}

	target := tier.Resolve(tier.KindBusiness, c.IsPremium(), c.IsAcademy())
	approval := &Approval{Membership: m, OldRole: current, NewRole: current}

	var entry *audit.Entry
	if !current.IsAdmin() && current != target {
		entry = &audit.Entry{
			UserID:    userID,
			ChangedBy: actorID,
			OldRole:   current,
			NewRole:   target,
			Reason:    audit.ReasonMembershipApproval,
		}
	}

	if err := s.acceptor.AcceptMembership(ctx, m.ID, entry); err != nil {
		return nil, fmt.Errorf("approve membership: %w", err)
	}
	m.Status = MembershipAccepted

	if entry != nil {
		approval.NewRole = target
		approval.RoleChanged = true
	}
	return approval, nil
}
