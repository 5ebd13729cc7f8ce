// AngelaMos | 2026
// role_store.go

package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

// RoleStore reads and changes role tiers. Every change is written together
// with its audit entry in one transaction.
type RoleStore struct {
	db    *sqlx.DB
	users Repository
	audit audit.Repository
}

func NewRoleStore(db *sqlx.DB, users Repository, auditRepo audit.Repository) *RoleStore {
	return &RoleStore{db: db, users: users, audit: auditRepo}
}

func (s *RoleStore) GetRole(ctx context.Context, userID string) (tier.RoleTier, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *RoleStore) FindByEmail(
	ctx context.Context,
	email string,
) (string, tier.RoleTier, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	return u.ID, u.Role, nil
}

func (s *RoleStore) ChangeRole(ctx context.Context, entry *audit.Entry) error {
	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.ChangeRoleTx(ctx, tx, entry)
	})
	if err != nil {
		return fmt.Errorf("change role: %w", err)
	}
	return nil
}

// ChangeRoleTx writes the role and its audit entry through db, which the
// caller owns.
func (s *RoleStore) ChangeRoleTx(ctx context.Context, db core.DBTX, entry *audit.Entry) error {
	if err := s.users.UpdateRole(ctx, db, entry.UserID, entry.OldRole, entry.NewRole); err != nil {
		return err
	}
	return s.audit.Append(ctx, db, entry)
}
