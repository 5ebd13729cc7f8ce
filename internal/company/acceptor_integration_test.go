// AngelaMos | 2026
// acceptor_integration_test.go

//go:build integration

package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/testutil"
	"github.com/carterperez-dev/talenthub/internal/tier"
	"github.com/carterperez-dev/talenthub/internal/user"
)

func TestApproveMembershipAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewPostgres(t)
	fx := testutil.NewFixtures(t, db)

	adminID := fx.User("ops@example.com", "admin")
	memberID := fx.User("dev@acme.test", "freemium_talent")
	acme := fx.Company("Acme", "company", "premium")
	fx.Member(acme, memberID, "pending")

	auditRepo := audit.NewRepository(db)
	users := user.NewRepository(db)
	roles := user.NewRoleStore(db, users, auditRepo)
	repo := NewRepository(db)
	svc := NewService(repo, roles, NewAcceptor(db, roles))

	// A concurrent role change makes the compare-and-set fail.
	_, err := db.ExecContext(ctx, `UPDATE users SET role = 'premium_talent' WHERE id = $1`, memberID)
	require.NoError(t, err)
	stale := NewService(repo, staticRole(tier.FreemiumTalent), NewAcceptor(db, roles))

	_, err = stale.ApproveMembership(ctx, acme, memberID, adminID)
	require.ErrorIs(t, err, user.ErrRoleChanged)

	m, err := repo.GetMembership(ctx, acme, memberID)
	require.NoError(t, err)
	assert.Equal(t, MembershipPending, m.Status)

	approval, err := svc.ApproveMembership(ctx, acme, memberID, adminID)
	require.NoError(t, err)
	assert.Equal(t, tier.PremiumBusiness, approval.NewRole)

	m, err = repo.GetMembership(ctx, acme, memberID)
	require.NoError(t, err)
	assert.Equal(t, MembershipAccepted, m.Status)

	entries, total, err := auditRepo.ListByUser(ctx, memberID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, audit.ReasonMembershipApproval, entries[0].Reason)
}

type staticRole tier.RoleTier

func (s staticRole) GetRole(context.Context, string) (tier.RoleTier, error) {
	return tier.RoleTier(s), nil
}
