// AngelaMos | 2026
// acceptor.go

package company

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/core"
)

// MembershipAcceptor marks a membership accepted. A non-nil entry is applied
// in the same transaction, so a failed role write leaves the membership
// pending.
type MembershipAcceptor interface {
	AcceptMembership(ctx context.Context, membershipID string, entry *audit.Entry) error
}

type TxRoleChanger interface {
	ChangeRoleTx(ctx context.Context, db core.DBTX, entry *audit.Entry) error
}

type acceptor struct {
	db    *sqlx.DB
	roles TxRoleChanger
}

func NewAcceptor(db *sqlx.DB, roles TxRoleChanger) MembershipAcceptor {
	return &acceptor{db: db, roles: roles}
}

func (a *acceptor) AcceptMembership(
	ctx context.Context,
	membershipID string,
	entry *audit.Entry,
) error {
	err := core.InTx(ctx, a.db, func(tx *sqlx.Tx) error {
		if err := NewRepository(tx).UpdateMembershipStatus(ctx, membershipID, MembershipAccepted); err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return a.roles.ChangeRoleTx(ctx, tx, entry)
	})
	if err != nil {
		return fmt.Errorf("accept membership: %w", err)
	}
	return nil
}
