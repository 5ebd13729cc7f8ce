// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type RoleChanger interface {
	ChangeRole(ctx context.Context, entry *audit.Entry) error
}

type Service struct {
	repo  Repository
	roles RoleChanger
	audit audit.Repository
}

func NewService(repo Repository, roles RoleChanger, auditRepo audit.Repository) *Service {
	return &Service{repo: repo, roles: roles, audit: auditRepo}
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// UpdateUserRole sets a role by hand. A no-op change writes no audit entry.
func (s *Service) UpdateUserRole(
	ctx context.Context,
	actorID, userID, role string,
) (*User, error) {
	newRole, err := tier.Parse(role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w: %w", err, core.ErrInvalidInput)
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.Role == newRole {
		return u, nil
	}

	entry := &audit.Entry{
		UserID:    u.ID,
		ChangedBy: actorID,
		OldRole:   u.Role,
		NewRole:   newRole,
		Reason:    audit.ReasonAdminOverride,
	}
	if err := s.roles.ChangeRole(ctx, entry); err != nil {
		return nil, err
	}

	u.Role = newRole
	return u, nil
}

func (s *Service) ListRoleAudit(
	ctx context.Context,
	userID string,
	params ListUsersParams,
) ([]audit.Entry, int, error) {
	params.Normalize()

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}

	return s.audit.ListByUser(ctx, userID, params.PageSize, params.Offset())
}
